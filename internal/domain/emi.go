package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmiNotFound      = errors.New("EMI not found")
	ErrEmiNotInSchedule = errors.New("EMI does not belong to this loan's schedule")
	ErrEmiAlreadyPaid   = errors.New("EMI is already paid")
	ErrNoPayableEmi     = errors.New("no pending EMI left to pay")
	ErrEmiNotPaid       = errors.New("receipt is only available once the EMI is settled")
	ErrOutOfOrderEmi    = errors.New("EMIs must be paid in order")
	ErrEmiNotPending    = errors.New("only PENDING EMIs can be paid")
)

// EmiStatus is the payment state of a single installment
type EmiStatus string

const (
	EmiStatusPending EmiStatus = "PENDING"
	EmiStatusPaid    EmiStatus = "PAID"
	EmiStatusLate    EmiStatus = "LATE"
)

// EmiInstallment is one row of a loan's EMI schedule. DueDate and
// PaymentDate are kept as the ISO strings the loan service returned.
type EmiInstallment struct {
	ID               int64               `json:"id"`
	LoanID           int64               `json:"loanId"`
	EmiNumber        *int                `json:"emiNumber,omitempty"`
	Amount           decimal.NullDecimal `json:"amount"`
	DueDate          string              `json:"dueDate,omitempty"`
	Status           EmiStatus           `json:"status"`
	PaymentDate      string              `json:"paymentDate,omitempty"`
	TransactionRef   string              `json:"transactionRef,omitempty"`
	RemainingBalance decimal.NullDecimal `json:"remainingBalance"`
}

// IsPaid reports whether the installment is settled
func (e *EmiInstallment) IsPaid() bool {
	return e.Status == EmiStatusPaid
}

// ErrMustPayEarlierEmi is returned when a payment targets an installment
// other than the next payable one
type ErrMustPayEarlierEmi struct {
	Expected  int64
	Requested int64
}

func (e ErrMustPayEarlierEmi) Error() string {
	return fmt.Sprintf("must pay EMI %d before EMI %d", e.Expected, e.Requested)
}

// Is lets errors.Is match the generic out-of-order sentinel
func (e ErrMustPayEarlierEmi) Is(target error) bool {
	return target == ErrOutOfOrderEmi
}
