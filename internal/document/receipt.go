package document

import (
	"strings"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/reconcile"
)

const receiptTitle = "EMI Payment Receipt"

// borrowerName falls back to "Customer" when the loan carries no name
func borrowerName(loan *domain.Loan, fallback string) string {
	if loan == nil {
		return fallback
	}
	return orDefault(loan.CustomerName, fallback)
}

func loanIDOf(loan *domain.Loan, pack *domain.LoanWithEmiPack) int64 {
	if loan != nil && loan.ID != 0 {
		return loan.ID
	}
	if pack != nil {
		return pack.LoanID
	}
	return 0
}

// ReceiptRows returns the label/value pairs printed on an EMI receipt
func ReceiptRows(emi *domain.EmiInstallment, loan *domain.Loan, pack *domain.LoanWithEmiPack) [][2]string {
	fig := reconcile.ForReceipt(emi, loan, pack)

	status := placeholder
	if emi.Status != "" {
		status = strings.ToUpper(string(emi.Status))
	}

	return [][2]string{
		{"Receipt No.", ReceiptNumber(emi.ID)},
		{"Transaction Ref ID", orDefault(emi.TransactionRef, placeholder)},
		{"Loan ID", LoanRef(loanIDOf(loan, pack))},
		{"EMI No.", InstallmentLabel(fig.InstallmentIndex, fig.TenureMonths)},
		{"EMI Amount", Amount(fig.EmiAmount)},
		{"Paid On", LongDate(emi.PaymentDate)},
		{"Status", status},
		{"Interest", Percent(fig.InterestRate)},
		{"Tenure", Months(fig.TenureMonths)},
		{"Principal", Amount(fig.Principal)},
		{"Interest amount", Amount(fig.Interest)},
		{"Total repayable amount", Amount(fig.Repayable)},
		{"Remaining balance after this payment", Amount(fig.RemainingBalance)},
	}
}

// RenderReceipt lays out the payment receipt for a single EMI. Missing
// figures print as placeholders; only a PDF serialisation failure is
// returned as an error.
func (r *Renderer) RenderReceipt(emi *domain.EmiInstallment, loan *domain.Loan, pack *domain.LoanWithEmiPack) (*Document, error) {
	if emi == nil {
		emi = &domain.EmiInstallment{}
	}

	p := r.newPage()
	p.header(receiptTitle)
	p.y += 20
	p.headingBar(receiptTitle)

	p.text("Dear "+borrowerName(loan, "Customer")+",", 6)
	p.text("Thank you for your EMI payment. Below are the transaction details:", 8)

	p.table(ReceiptRows(emi, loan, pack))
	p.notes(
		"This receipt has been recorded in your dashboard for future reference.",
		"For any discrepancies, kindly contact support within 48 hours.",
	)
	p.footer(r.now().Year())

	return p.output(ReceiptFilename(emi.ID))
}
