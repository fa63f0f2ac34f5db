// Package schedule orders a loan's EMI schedule and gates payments so that
// installments are always settled in sequence.
package schedule

import (
	"sort"
	"strings"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/util"
)

// CompactWindowSize is the number of rows shown when a schedule is collapsed
const CompactWindowSize = 3

// StatusAll disables the status filter
const StatusAll = "ALL"

// less is the canonical installment comparator: ordinal, then due date, then id
func less(a, b *domain.EmiInstallment) bool {
	if a.EmiNumber != nil && b.EmiNumber != nil {
		return *a.EmiNumber < *b.EmiNumber
	}
	if a.DueDate != "" && b.DueDate != "" {
		return a.DueDate < b.DueDate
	}
	return a.ID < b.ID
}

// Order returns the schedule in canonical order. The input is not modified
// and rows that compare equal keep their relative order.
func Order(emis []domain.EmiInstallment) []domain.EmiInstallment {
	ordered := make([]domain.EmiInstallment, len(emis))
	copy(ordered, emis)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(&ordered[i], &ordered[j])
	})
	return ordered
}

// NextPayable returns the first non-PAID installment of an ordered schedule,
// or nil when everything is paid.
func NextPayable(ordered []domain.EmiInstallment) *domain.EmiInstallment {
	for i := range ordered {
		if !ordered[i].IsPaid() {
			return &ordered[i]
		}
	}
	return nil
}

// IsPayableNow reports whether emi may be paid right now
func IsPayableNow(emi *domain.EmiInstallment, next *domain.EmiInstallment) bool {
	if emi == nil || next == nil {
		return false
	}
	return emi.Status == domain.EmiStatusPending && emi.ID == next.ID
}

// CheckPayable validates a payment of emiID against the full schedule.
// It returns nil only for the single installment that is payable now.
func CheckPayable(emis []domain.EmiInstallment, emiID int64) error {
	ordered := Order(emis)

	var target *domain.EmiInstallment
	for i := range ordered {
		if ordered[i].ID == emiID {
			target = &ordered[i]
			break
		}
	}
	if target == nil {
		return domain.ErrEmiNotInSchedule
	}
	if target.IsPaid() {
		return domain.ErrEmiAlreadyPaid
	}

	next := NextPayable(ordered)
	if next == nil {
		return domain.ErrNoPayableEmi
	}
	if target.ID == next.ID && target.Status != domain.EmiStatusPending {
		return domain.ErrEmiNotPending
	}
	if !IsPayableNow(target, next) {
		return domain.ErrMustPayEarlierEmi{
			Expected:  next.ID,
			Requested: emiID,
		}
	}
	return nil
}

// PaidCount counts settled installments
func PaidCount(emis []domain.EmiInstallment) int {
	n := 0
	for i := range emis {
		if emis[i].IsPaid() {
			n++
		}
	}
	return n
}

// AllPaid reports whether a non-empty schedule is fully settled
func AllPaid(emis []domain.EmiInstallment) bool {
	return len(emis) > 0 && PaidCount(emis) == len(emis)
}

// LastPaymentDate returns the payment date of the last paid installment in
// canonical order, or "" when nothing has been paid.
func LastPaymentDate(emis []domain.EmiInstallment) string {
	paid := make([]domain.EmiInstallment, 0, len(emis))
	for i := range emis {
		if emis[i].IsPaid() {
			paid = append(paid, emis[i])
		}
	}
	if len(paid) == 0 {
		return ""
	}
	paid = Order(paid)
	return paid[len(paid)-1].PaymentDate
}

// Filter narrows the rows shown to a user. It never changes which
// installment is payable.
type Filter struct {
	Status  string `json:"status,omitempty"`
	DueFrom string `json:"dueFrom,omitempty"`
	DueTo   string `json:"dueTo,omitempty"`
}

// Apply returns the rows of ordered that match f, in order. Rows with no
// parseable due date pass the date bounds, and unparseable bounds are ignored.
func (f Filter) Apply(ordered []domain.EmiInstallment) []domain.EmiInstallment {
	status := strings.ToUpper(strings.TrimSpace(f.Status))
	from, hasFrom := util.ParseDate(f.DueFrom)
	to, hasTo := util.ParseDate(f.DueTo)

	rows := make([]domain.EmiInstallment, 0, len(ordered))
	for _, row := range ordered {
		if status != "" && status != StatusAll && string(row.Status) != status {
			continue
		}
		due, hasDue := util.ParseDate(row.DueDate)
		if hasDue && hasFrom && due.Before(from) {
			continue
		}
		if hasDue && hasTo && due.After(to) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// IsZero reports whether the filter lets every row through
func (f Filter) IsZero() bool {
	s := strings.TrimSpace(f.Status)
	return (s == "" || strings.EqualFold(s, StatusAll)) && f.DueFrom == "" && f.DueTo == ""
}
