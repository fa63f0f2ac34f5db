package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound          = errors.New("loan not found")
	ErrLoanNotCleared        = errors.New("loan is not cleared yet")
	ErrLoanRejected          = errors.New("loan is rejected, no EMI schedule available")
	ErrLoanStatusInvalid     = errors.New("status must be APPROVED, REJECTED or CLOSED")
	ErrStatusCommentRequired = errors.New("a comment is required for status changes")
	ErrStatusCommentTooLong  = errors.New("comment must be 500 characters or less")
)

// LoanStatus is the lifecycle state of a loan application
type LoanStatus string

const (
	LoanStatusSubmitted LoanStatus = "SUBMITTED"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRejected  LoanStatus = "REJECTED"
	LoanStatusClosed    LoanStatus = "CLOSED"
)

// IsValid reports whether s is a known loan status
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusSubmitted, LoanStatusApproved, LoanStatusRejected, LoanStatusClosed:
		return true
	}
	return false
}

// LoanTypeRef is the loan-type descriptor embedded in a loan
type LoanTypeRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StatusHistoryEntry is one transition in a loan's status history
type StatusHistoryEntry struct {
	Status    LoanStatus `json:"status"`
	Comment   string     `json:"comment,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// Loan is the canonical loan record. Optional fields stay unset when the
// source did not carry them; the reconciler decides what to derive.
type Loan struct {
	ID                  int64                `json:"id"`
	Principal           decimal.NullDecimal  `json:"principal"`
	TenureYears         *int                 `json:"tenureYears,omitempty"`
	TenureMonths        *int                 `json:"tenureMonths,omitempty"`
	TotalEmis           *int                 `json:"totalEmis,omitempty"`
	AppliedInterestRate decimal.NullDecimal  `json:"appliedInterestRate"`
	EmiAmount           decimal.NullDecimal  `json:"emiAmount"`
	Status              LoanStatus           `json:"status"`
	SubmittedAt         string               `json:"submittedAt,omitempty"`
	ClosedAt            string               `json:"closedAt,omitempty"`
	LoanType            LoanTypeRef          `json:"loanType"`
	StatusHistory       []StatusHistoryEntry `json:"statusHistory,omitempty"`
	CustomerName        string               `json:"customerName,omitempty"`
	Emis                []EmiInstallment     `json:"emis,omitempty"`
}

// LoanWithEmiPack is the denormalised loan + schedule bundle. The aggregate
// fields are hints and may be unset.
type LoanWithEmiPack struct {
	LoanID              int64               `json:"loanId"`
	Principal           decimal.NullDecimal `json:"principal"`
	AppliedInterestRate decimal.NullDecimal `json:"appliedInterestRate"`
	TenureYears         *int                `json:"tenureYears,omitempty"`
	TenureMonths        *int                `json:"tenureMonths,omitempty"`
	TotalEmis           *int                `json:"totalEmis,omitempty"`
	EmiAmount           decimal.NullDecimal `json:"emiAmount"`
	RemainingEmis       *int                `json:"remainingEmis,omitempty"`
	RemainingAmount     decimal.NullDecimal `json:"remainingAmount"`
	RemainingBalance    decimal.NullDecimal `json:"remainingBalance"`
	Emis                []EmiInstallment    `json:"emis"`
}

// LoanGateway is the customer-facing side of the external loan service
type LoanGateway interface {
	GetCustomerLoans(ctx context.Context, session Session) ([]Loan, error)
	GetLoanWithEmis(ctx context.Context, session Session, loanID int64) (*LoanWithEmiPack, error)
	PayEmi(ctx context.Context, session Session, emiID int64) (*EmiInstallment, error)
	GetStatusHistory(ctx context.Context, session Session, loanID int64) ([]StatusHistoryEntry, error)
}

// AdminLoanGateway is the admin side of the external loan service
type AdminLoanGateway interface {
	ListLoans(ctx context.Context, session Session) ([]Loan, error)
	GetLoan(ctx context.Context, session Session, loanID int64) (*Loan, error)
	UpdateLoanStatus(ctx context.Context, session Session, loanID int64, status LoanStatus, comment string) error
	DeleteLoan(ctx context.Context, session Session, loanID int64) error
	ListLoanTypes(ctx context.Context, session Session) ([]LoanType, error)
	UpdateLoanType(ctx context.Context, session Session, loanType *LoanType) (*LoanType, error)
}
