package document

import (
	"fmt"
	"strconv"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/reconcile"
)

const nocTitle = "No Objection Certificate"

// closureDates resolves the printed start and close dates. A loan with no
// recorded close date and no payments is treated as closed today.
func (r *Renderer) closureDates(fig reconcile.LoanFigures) (start, closed string) {
	start = LongDate(fig.StartDate)
	if fig.ClosedDate != "" {
		closed = LongDate(fig.ClosedDate)
	} else {
		closed = longTime(r.now())
	}
	return start, closed
}

// ClosureRows returns the label/value pairs printed on a closure
// certificate
func (r *Renderer) ClosureRows(loan *domain.Loan, pack *domain.LoanWithEmiPack, emis []domain.EmiInstallment) [][2]string {
	fig := r.closureFigures(loan, pack, emis)
	start, closed := r.closureDates(fig)

	paid := fig.PaidCount
	if paid == 0 {
		paid = fig.EmiCount
	}

	return [][2]string{
		{"Loan ID", LoanRef(loanIDOf(loan, pack))},
		{"Borrower Name", borrowerName(loan, "N/A")},
		{"Loan Amount", Amount(fig.Principal)},
		{"Loan Start Date", start},
		{"Loan Closed Date", closed},
		{"Total EMIs Paid", strconv.Itoa(paid)},
		{"Interest Rate", Percent(fig.InterestRate)},
		{"Tenure", Months(fig.TenureMonths)},
		{"Total Paid Amount", Amount(fig.Repayable)},
	}
}

// closureFigures reconciles the loan, letting an explicit emis list stand
// in for the schedule when the pack has none
func (r *Renderer) closureFigures(loan *domain.Loan, pack *domain.LoanWithEmiPack, emis []domain.EmiInstallment) reconcile.LoanFigures {
	if len(emis) > 0 && (pack == nil || len(pack.Emis) == 0) {
		filled := domain.LoanWithEmiPack{}
		if pack != nil {
			filled = *pack
		}
		filled.Emis = emis
		pack = &filled
	}
	return reconcile.ForLoan(loan, pack)
}

// RenderClosureCertificate lays out the NOC for a fully repaid loan
func (r *Renderer) RenderClosureCertificate(loan *domain.Loan, pack *domain.LoanWithEmiPack, emis []domain.EmiInstallment) (*Document, error) {
	fig := r.closureFigures(loan, pack, emis)
	start, closed := r.closureDates(fig)
	borrower := borrowerName(loan, "Customer")
	loanRef := LoanRef(loanIDOf(loan, pack))

	p := r.newPage()
	p.header(nocTitle)
	p.y += 10
	p.headingBar(nocTitle)

	p.paragraph(fmt.Sprintf(
		"This is to certify that %s, holder of Loan ID %s, has successfully repaid the entire loan "+
			"amount as per the scheduled EMI plan. The loan was initiated on %s and closed on %s. "+
			"All dues are cleared and there are no outstanding liabilities on this account.",
		borrower, loanRef, start, closed))
	p.paragraph("Accordingly, we issue this No Objection Certificate (NOC) confirming that we have no " +
		"objection to the closure of the loan account and the borrower’s disengagement from this contract.")

	p.table(r.ClosureRows(loan, pack, emis))
	p.notes(
		"This NOC is issued after full and final settlement of the loan account.",
		"For any queries, please reach out to our support team within 15 days of issuance.",
	)
	p.authorisation()
	p.footer(r.now().Year())

	return p.output(NOCFilename(loanIDOf(loan, pack)))
}

// authorisation draws the signature block on the right of the page
func (p *page) authorisation() {
	x := bodyLeft + bodyWidth - 60
	y := p.y + 9

	p.color(p.brand.Primary)
	p.pdf.SetFont("Helvetica", "", 11)
	p.pdf.Text(x+5, y, "Authorized By:")

	p.pdf.SetFont("Courier", "I", 14)
	p.pdf.SetXY(x, y+9)
	p.pdf.CellFormat(40, 6, p.tr(p.brand.Name+"Officer"), "", 0, "C", false, 0, "")

	p.divider(x, y+17, x+40, 200)
	p.pdf.SetFont("Helvetica", "B", 11)
	p.pdf.SetXY(x-10, y+19)
	p.pdf.CellFormat(60, 5, "Loan Officer / Administrator", "", 0, "C", false, 0, "")

	p.y = y + 26
}
