package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// ReceiptFigures are the reconciled values printed on a payment receipt
type ReceiptFigures struct {
	Totals
	InstallmentIndex *int                `json:"installmentIndex,omitempty"`
	TenureMonths     *int                `json:"tenureMonths,omitempty"`
	EmiAmount        decimal.NullDecimal `json:"emiAmount"`
	InterestRate     decimal.NullDecimal `json:"interestRate"`
	Principal        decimal.NullDecimal `json:"principal"`
	RemainingBalance decimal.NullDecimal `json:"remainingBalance"`
}

// LoanFigures summarise a whole loan for the schedule view and the
// closure certificate
type LoanFigures struct {
	Totals
	Principal       decimal.NullDecimal `json:"principal"`
	InterestRate    decimal.NullDecimal `json:"interestRate"`
	EmiAmount       decimal.NullDecimal `json:"emiAmount"`
	TenureMonths    *int                `json:"tenureMonths,omitempty"`
	Outstanding     decimal.NullDecimal `json:"outstanding"`
	PaidCount       int                 `json:"paidCount"`
	EmiCount        int                 `json:"emiCount"`
	LastPaymentDate string              `json:"lastPaymentDate,omitempty"`
	StartDate       string              `json:"startDate,omitempty"`
	ClosedDate      string              `json:"closedDate,omitempty"`
	Cleared         bool                `json:"cleared"`
}

// ForReceipt reconciles everything a receipt for emi needs. The EMI's own
// amount drives the flat-rate total when the pack carries no schedule.
func ForReceipt(emi *domain.EmiInstallment, loan *domain.Loan, pack *domain.LoanWithEmiPack) ReceiptFigures {
	var fig ReceiptFigures
	if emi == nil {
		return fig
	}

	fig.EmiAmount = emi.Amount
	fig.InterestRate = InterestRate(pack, loan)
	fig.Principal = Principal(pack, loan)
	fig.TenureMonths = DeriveTenureMonths(pack, loan)
	fig.InstallmentIndex = DeriveInstallmentIndex(emi, pack, loan)
	fig.Totals = ComputeTotals(pack, emi.Amount, fig.TenureMonths, fig.Principal)

	explicit := emi.RemainingBalance
	if !explicit.Valid && pack != nil {
		explicit = pack.RemainingBalance
	}
	fig.RemainingBalance = ComputeRemainingBalance(BalanceInput{
		Principal:         fig.Principal,
		AnnualRatePercent: fig.InterestRate,
		TenureMonths:      fig.TenureMonths,
		InstallmentIndex:  fig.InstallmentIndex,
		Explicit:          explicit,
	})
	return fig
}

// ForLoan reconciles the loan-level summary. The schedule is read from the
// pack, falling back to any schedule embedded in the loan.
func ForLoan(loan *domain.Loan, pack *domain.LoanWithEmiPack) LoanFigures {
	var fig LoanFigures

	emis := emisOf(pack)
	if len(emis) == 0 {
		emis = loanEmisOf(loan)
	}

	fig.Principal = Principal(pack, loan)
	fig.InterestRate = InterestRate(pack, loan)
	fig.EmiAmount = EmiAmount(pack, loan)
	fig.TenureMonths = DeriveTenureMonths(pack, loan)
	fig.Totals = ComputeTotals(pack, fig.EmiAmount, fig.TenureMonths, fig.Principal)
	fig.Outstanding = OutstandingAmount(pack)
	fig.PaidCount = paidCount(emis)
	fig.EmiCount = len(emis)

	for i := range emis {
		if emis[i].IsPaid() && emis[i].PaymentDate > fig.LastPaymentDate {
			fig.LastPaymentDate = emis[i].PaymentDate
		}
	}

	if loan != nil {
		fig.StartDate = loan.SubmittedAt
		fig.ClosedDate = loan.ClosedAt
	}
	if fig.StartDate == "" {
		fig.StartDate = earliestDueDate(emis)
	}
	if fig.ClosedDate == "" {
		fig.ClosedDate = fig.LastPaymentDate
	}

	fig.Cleared = IsCleared(loan, pack)
	return fig
}

// IsCleared reports whether a loan is fully settled: every scheduled row
// paid with nothing outstanding, or the loan already CLOSED.
func IsCleared(loan *domain.Loan, pack *domain.LoanWithEmiPack) bool {
	if loan != nil && loan.Status == domain.LoanStatusClosed {
		return true
	}
	emis := emisOf(pack)
	if len(emis) == 0 || paidCount(emis) != len(emis) {
		return false
	}
	outstanding := OutstandingAmount(pack)
	return !outstanding.Valid || !outstanding.Decimal.IsPositive()
}

func earliestDueDate(emis []domain.EmiInstallment) string {
	earliest := ""
	for i := range emis {
		due := emis[i].DueDate
		if due != "" && (earliest == "" || due < earliest) {
			earliest = due
		}
	}
	return earliest
}
