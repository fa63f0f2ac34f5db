// Package reconcile derives canonical loan figures (tenure, installment
// index, totals, remaining balance) from loan snapshots that may be partial.
// Every function prefers values the loan service supplied over values it
// recomputes, and none of them fail: a figure that cannot be derived is
// returned as unknown.
package reconcile

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// Totals are the loan-level repayment totals
type Totals struct {
	Repayable decimal.NullDecimal `json:"totalRepayable"`
	Interest  decimal.NullDecimal `json:"totalInterest"`
}

// BalanceInput carries what ComputeRemainingBalance needs. Explicit is the
// balance reported by the loan service, if any.
type BalanceInput struct {
	Principal         decimal.NullDecimal
	AnnualRatePercent decimal.NullDecimal
	TenureMonths      *int
	InstallmentIndex  *int
	Explicit          decimal.NullDecimal
}

func known(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}

func intRef(v int) *int {
	return &v
}

func emisOf(pack *domain.LoanWithEmiPack) []domain.EmiInstallment {
	if pack == nil {
		return nil
	}
	return pack.Emis
}

func loanEmisOf(loan *domain.Loan) []domain.EmiInstallment {
	if loan == nil {
		return nil
	}
	return loan.Emis
}

// DeriveTenureMonths resolves the loan tenure in months: explicit months,
// then years, then the number of scheduled rows, then the totalEmis field.
func DeriveTenureMonths(pack *domain.LoanWithEmiPack, loan *domain.Loan) *int {
	switch {
	case pack != nil && pack.TenureMonths != nil:
		return intRef(*pack.TenureMonths)
	case loan != nil && loan.TenureMonths != nil:
		return intRef(*loan.TenureMonths)
	case pack != nil && pack.TenureYears != nil:
		return intRef(*pack.TenureYears * 12)
	case loan != nil && loan.TenureYears != nil:
		return intRef(*loan.TenureYears * 12)
	case pack != nil && len(pack.Emis) > 0:
		return intRef(len(pack.Emis))
	case pack != nil && pack.TotalEmis != nil:
		return intRef(*pack.TotalEmis)
	case loan != nil && loan.TotalEmis != nil:
		return intRef(*loan.TotalEmis)
	}
	return nil
}

// DeriveInstallmentIndex resolves the 1-based position of emi within its
// schedule. Positions are taken from the schedules as the loan service
// returned them.
func DeriveInstallmentIndex(emi *domain.EmiInstallment, pack *domain.LoanWithEmiPack, loan *domain.Loan) *int {
	if emi == nil {
		return nil
	}
	if emi.EmiNumber != nil {
		return intRef(*emi.EmiNumber)
	}

	byID := func(emis []domain.EmiInstallment) int {
		for i := range emis {
			if emis[i].ID == emi.ID {
				return i
			}
		}
		return -1
	}
	if i := byID(emisOf(pack)); i >= 0 {
		return intRef(i + 1)
	}
	if i := byID(loanEmisOf(loan)); i >= 0 {
		return intRef(i + 1)
	}

	if emi.DueDate != "" {
		byDue := func(emis []domain.EmiInstallment) int {
			for i := range emis {
				if emis[i].DueDate == emi.DueDate {
					return i
				}
			}
			return -1
		}
		if i := byDue(emisOf(pack)); i >= 0 {
			return intRef(i + 1)
		}
		if i := byDue(loanEmisOf(loan)); i >= 0 {
			return intRef(i + 1)
		}
	}

	if paid := paidCount(emisOf(pack)); paid > 0 {
		return intRef(paid + 1)
	}
	return nil
}

// ComputeTotals sums the schedule when one is present, otherwise multiplies
// a flat EMI by the tenure. Interest is repayable minus principal and is
// not clamped at zero.
func ComputeTotals(pack *domain.LoanWithEmiPack, emiAmount decimal.NullDecimal, tenureMonths *int, principal decimal.NullDecimal) Totals {
	var totals Totals

	if emis := emisOf(pack); len(emis) > 0 {
		sum := decimal.Zero
		for i := range emis {
			if emis[i].Amount.Valid {
				sum = sum.Add(emis[i].Amount.Decimal)
			}
		}
		totals.Repayable = known(sum)
	} else if emiAmount.Valid && tenureMonths != nil {
		totals.Repayable = known(emiAmount.Decimal.Mul(decimal.NewFromInt(int64(*tenureMonths))))
	}

	if totals.Repayable.Valid && principal.Valid {
		totals.Interest = known(totals.Repayable.Decimal.Sub(principal.Decimal))
	}
	return totals
}

// ComputeRemainingBalance returns the outstanding principal after
// InstallmentIndex payments. An explicit balance is returned unchanged;
// otherwise the reducing-balance amortisation formula is replayed.
func ComputeRemainingBalance(in BalanceInput) decimal.NullDecimal {
	if in.Explicit.Valid {
		return in.Explicit
	}
	if !in.Principal.Valid || !in.AnnualRatePercent.Valid || in.TenureMonths == nil || in.InstallmentIndex == nil {
		return decimal.NullDecimal{}
	}
	n := *in.TenureMonths
	k := *in.InstallmentIndex
	if n <= 0 {
		return decimal.NullDecimal{}
	}

	p := in.Principal.Decimal.InexactFloat64()
	r := in.AnnualRatePercent.Decimal.InexactFloat64() / 1200

	var remaining float64
	if r == 0 {
		remaining = p * (1 - float64(min(k, n))/float64(n))
	} else {
		powN := math.Pow(1+r, float64(n))
		powK := math.Pow(1+r, float64(k))
		denom := powN - 1
		if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
			return decimal.NullDecimal{}
		}
		remaining = p * (powN - powK) / denom
	}
	if math.IsNaN(remaining) || math.IsInf(remaining, 0) {
		return decimal.NullDecimal{}
	}
	if remaining < 0 {
		remaining = 0
	}
	return known(decimal.NewFromFloat(remaining).Round(2))
}

// OutstandingAmount is the amount still owed on the loan: the pack's
// remainingAmount hint when present, else the sum of unpaid rows.
func OutstandingAmount(pack *domain.LoanWithEmiPack) decimal.NullDecimal {
	if pack == nil {
		return decimal.NullDecimal{}
	}
	if pack.RemainingAmount.Valid {
		return pack.RemainingAmount
	}
	if len(pack.Emis) == 0 {
		return decimal.NullDecimal{}
	}
	sum := decimal.Zero
	for i := range pack.Emis {
		if !pack.Emis[i].IsPaid() && pack.Emis[i].Amount.Valid {
			sum = sum.Add(pack.Emis[i].Amount.Decimal)
		}
	}
	return known(sum)
}

// InterestRate is the applied annual rate, preferring the pack
func InterestRate(pack *domain.LoanWithEmiPack, loan *domain.Loan) decimal.NullDecimal {
	if pack != nil && pack.AppliedInterestRate.Valid {
		return pack.AppliedInterestRate
	}
	if loan != nil {
		return loan.AppliedInterestRate
	}
	return decimal.NullDecimal{}
}

// Principal is the sanctioned loan amount, preferring the pack
func Principal(pack *domain.LoanWithEmiPack, loan *domain.Loan) decimal.NullDecimal {
	if pack != nil && pack.Principal.Valid {
		return pack.Principal
	}
	if loan != nil {
		return loan.Principal
	}
	return decimal.NullDecimal{}
}

// EmiAmount is the flat monthly installment, preferring the pack
func EmiAmount(pack *domain.LoanWithEmiPack, loan *domain.Loan) decimal.NullDecimal {
	if pack != nil && pack.EmiAmount.Valid {
		return pack.EmiAmount
	}
	if loan != nil {
		return loan.EmiAmount
	}
	return decimal.NullDecimal{}
}

func paidCount(emis []domain.EmiInstallment) int {
	n := 0
	for i := range emis {
		if emis[i].IsPaid() {
			n++
		}
	}
	return n
}
