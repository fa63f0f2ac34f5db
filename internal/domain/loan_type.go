package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanTypeNotFound        = errors.New("loan type not found")
	ErrLoanTypeNameEmpty       = errors.New("loan type name is required")
	ErrLoanTypeNameTooLong     = errors.New("loan type name cannot exceed 100 characters")
	ErrLoanTypeInterestInvalid = errors.New("interest rate must be between 6.5 and 15 percent")
	ErrLoanTypeMaxLoansInvalid = errors.New("max loans per customer must be between 1 and 3")
	ErrLoanTypeTenureInvalid   = errors.New("maximum tenure must be between 1 and 30 years")
	ErrLoanTypeAmountInvalid   = errors.New("maximum loan amount must be between 20,000 and 100 crore")
	ErrLoanTypePenaltyInvalid  = errors.New("penalty rate must be between 0 and 5 percent")
)

var (
	minInterestRate = decimal.RequireFromString("6.5")
	maxInterestRate = decimal.NewFromInt(15)
	minLoanAmount   = decimal.NewFromInt(20000)
	maxLoanAmount   = decimal.NewFromInt(1000000000)
	maxPenaltyRate  = decimal.NewFromInt(5)
)

// LoanType is an admin-configured loan product
type LoanType struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	InterestRate        decimal.Decimal     `json:"interestRate"`
	MaxLoansPerCustomer int                 `json:"maxLoansPerCustomer"`
	MaxTenureYears      int                 `json:"maxTenureYears"`
	MaxLoanAmount       decimal.Decimal     `json:"maxLoanAmount"`
	PenaltyRatePercent  decimal.NullDecimal `json:"penaltyRatePercent"`
}

// Validate checks the same bounds the loan service enforces
func (lt *LoanType) Validate() error {
	name := strings.TrimSpace(lt.Name)
	if name == "" {
		return ErrLoanTypeNameEmpty
	}
	if len(name) > MaxLoanTypeNameLength {
		return ErrLoanTypeNameTooLong
	}
	if lt.InterestRate.LessThan(minInterestRate) || lt.InterestRate.GreaterThan(maxInterestRate) {
		return ErrLoanTypeInterestInvalid
	}
	if lt.MaxLoansPerCustomer < 1 || lt.MaxLoansPerCustomer > 3 {
		return ErrLoanTypeMaxLoansInvalid
	}
	if lt.MaxTenureYears < 1 || lt.MaxTenureYears > 30 {
		return ErrLoanTypeTenureInvalid
	}
	if lt.MaxLoanAmount.LessThan(minLoanAmount) || lt.MaxLoanAmount.GreaterThan(maxLoanAmount) {
		return ErrLoanTypeAmountInvalid
	}
	if lt.PenaltyRatePercent.Valid {
		p := lt.PenaltyRatePercent.Decimal
		if p.IsNegative() || p.GreaterThan(maxPenaltyRate) {
			return ErrLoanTypePenaltyInvalid
		}
	}
	return nil
}
