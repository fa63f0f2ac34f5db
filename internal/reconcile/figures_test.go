package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

func samplePack() *domain.LoanWithEmiPack {
	return &domain.LoanWithEmiPack{
		LoanID:              42,
		Principal:           dec("3000"),
		AppliedInterestRate: dec("12"),
		Emis: []domain.EmiInstallment{
			{ID: 1, EmiNumber: intPtr(1), Amount: dec("1000"), DueDate: "2025-01-05", Status: domain.EmiStatusPaid, PaymentDate: "2025-01-03"},
			{ID: 2, EmiNumber: intPtr(2), Amount: dec("1000"), DueDate: "2025-02-05", Status: domain.EmiStatusPaid, PaymentDate: "2025-02-04"},
			{ID: 3, EmiNumber: intPtr(3), Amount: dec("1050"), DueDate: "2025-03-05", Status: domain.EmiStatusPending},
		},
	}
}

func TestForReceipt(t *testing.T) {
	pack := samplePack()
	loan := &domain.Loan{ID: 42, Status: domain.LoanStatusApproved}

	fig := ForReceipt(&pack.Emis[1], loan, pack)

	require.NotNil(t, fig.InstallmentIndex)
	require.NotNil(t, fig.TenureMonths)
	assert.Equal(t, 2, *fig.InstallmentIndex)
	assert.Equal(t, 3, *fig.TenureMonths)
	assert.Equal(t, "12", fig.InterestRate.Decimal.String())
	assert.True(t, fig.Repayable.Decimal.Equal(decimal.NewFromInt(3050)))
	assert.True(t, fig.Interest.Decimal.Equal(decimal.NewFromInt(50)))
	require.True(t, fig.RemainingBalance.Valid)
	assert.True(t, fig.RemainingBalance.Decimal.IsPositive())
	assert.True(t, fig.RemainingBalance.Decimal.LessThan(decimal.NewFromInt(3000)))
}

func TestForReceipt_ServerBalanceOverridesFormula(t *testing.T) {
	pack := samplePack()
	pack.Emis[1].RemainingBalance = dec("1234.56")

	fig := ForReceipt(&pack.Emis[1], nil, pack)
	assert.Equal(t, "1234.56", fig.RemainingBalance.Decimal.String())
}

func TestForReceipt_PackBalanceUsedWhenRowHasNone(t *testing.T) {
	pack := samplePack()
	pack.RemainingBalance = dec("1050")

	fig := ForReceipt(&pack.Emis[1], nil, pack)
	assert.Equal(t, "1050", fig.RemainingBalance.Decimal.String())
}

func TestForReceipt_SparseData(t *testing.T) {
	emi := &domain.EmiInstallment{ID: 7, Status: domain.EmiStatusPaid}

	fig := ForReceipt(emi, nil, &domain.LoanWithEmiPack{})
	assert.Nil(t, fig.InstallmentIndex)
	assert.Nil(t, fig.TenureMonths)
	assert.False(t, fig.Repayable.Valid)
	assert.False(t, fig.RemainingBalance.Valid)

	assert.Equal(t, ReceiptFigures{}, ForReceipt(nil, nil, nil))
}

func TestForLoan(t *testing.T) {
	pack := samplePack()
	loan := &domain.Loan{ID: 42, SubmittedAt: "2024-12-20T09:00:00", Status: domain.LoanStatusApproved}

	fig := ForLoan(loan, pack)

	assert.Equal(t, 2, fig.PaidCount)
	assert.Equal(t, 3, fig.EmiCount)
	assert.Equal(t, "2025-02-04", fig.LastPaymentDate)
	assert.Equal(t, "2024-12-20T09:00:00", fig.StartDate)
	assert.Equal(t, "2025-02-04", fig.ClosedDate)
	assert.True(t, fig.Outstanding.Decimal.Equal(decimal.NewFromInt(1050)))
	assert.False(t, fig.Cleared)
}

func TestForLoan_StartDateFallsBackToFirstDueDate(t *testing.T) {
	fig := ForLoan(&domain.Loan{ClosedAt: "2025-04-01"}, samplePack())

	assert.Equal(t, "2025-01-05", fig.StartDate)
	assert.Equal(t, "2025-04-01", fig.ClosedDate)
}

func TestForLoan_UsesEmbeddedSchedule(t *testing.T) {
	loan := &domain.Loan{Emis: samplePack().Emis}

	fig := ForLoan(loan, nil)
	assert.Equal(t, 2, fig.PaidCount)
	assert.Equal(t, 3, fig.EmiCount)
}

func TestIsCleared(t *testing.T) {
	pack := samplePack()
	assert.False(t, IsCleared(&domain.Loan{Status: domain.LoanStatusApproved}, pack))

	pack.Emis[2].Status = domain.EmiStatusPaid
	assert.True(t, IsCleared(&domain.Loan{Status: domain.LoanStatusApproved}, pack))

	pack.RemainingAmount = dec("10")
	assert.False(t, IsCleared(&domain.Loan{Status: domain.LoanStatusApproved}, pack))

	assert.True(t, IsCleared(&domain.Loan{Status: domain.LoanStatusClosed}, nil))
	assert.False(t, IsCleared(nil, &domain.LoanWithEmiPack{}))
}
