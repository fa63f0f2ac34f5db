package schedule

import (
	"math/rand"
	"testing"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func emi(id int64, number *int, due string, status domain.EmiStatus) domain.EmiInstallment {
	return domain.EmiInstallment{ID: id, LoanID: 1, EmiNumber: number, DueDate: due, Status: status}
}

func ids(emis []domain.EmiInstallment) []int64 {
	out := make([]int64, len(emis))
	for i := range emis {
		out[i] = emis[i].ID
	}
	return out
}

func TestOrder_ByEmiNumber(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(30, intPtr(3), "2025-01-01", domain.EmiStatusPending),
		emi(10, intPtr(1), "2025-03-01", domain.EmiStatusPaid),
		emi(20, intPtr(2), "2025-02-01", domain.EmiStatusPending),
	}

	ordered := Order(emis)
	assert.Equal(t, []int64{10, 20, 30}, ids(ordered))
}

func TestOrder_ByDueDateWhenNumbersMissing(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(1, nil, "2025-03-05", domain.EmiStatusPending),
		emi(2, nil, "2025-01-05", domain.EmiStatusPaid),
		emi(3, nil, "2025-02-05", domain.EmiStatusPending),
	}

	assert.Equal(t, []int64{2, 3, 1}, ids(Order(emis)))
}

func TestOrder_ByIDAsLastResort(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(9, nil, "", domain.EmiStatusPending),
		emi(4, nil, "", domain.EmiStatusPending),
		emi(7, nil, "", domain.EmiStatusPending),
	}

	assert.Equal(t, []int64{4, 7, 9}, ids(Order(emis)))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(3, intPtr(3), "", domain.EmiStatusPending),
		emi(1, intPtr(1), "", domain.EmiStatusPending),
	}

	_ = Order(emis)
	assert.Equal(t, []int64{3, 1}, ids(emis))
}

func TestOrder_StableForTies(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(5, intPtr(1), "", domain.EmiStatusPending),
		emi(2, intPtr(1), "", domain.EmiStatusPaid),
		emi(8, intPtr(1), "", domain.EmiStatusLate),
	}

	assert.Equal(t, []int64{5, 2, 8}, ids(Order(emis)))
}

func TestOrder_Empty(t *testing.T) {
	assert.Empty(t, Order(nil))
	assert.Nil(t, NextPayable(Order(nil)))
}

func TestNextPayable(t *testing.T) {
	ordered := Order([]domain.EmiInstallment{
		emi(1, intPtr(1), "", domain.EmiStatusPaid),
		emi(2, intPtr(2), "", domain.EmiStatusLate),
		emi(3, intPtr(3), "", domain.EmiStatusPending),
	})

	next := NextPayable(ordered)
	require.NotNil(t, next)
	assert.Equal(t, int64(2), next.ID)

	// A LATE installment is next but cannot be paid through the pending gate
	assert.False(t, IsPayableNow(&ordered[1], next))
	assert.False(t, IsPayableNow(&ordered[2], next))
}

func TestNextPayable_AllPaid(t *testing.T) {
	ordered := Order([]domain.EmiInstallment{
		emi(1, intPtr(1), "", domain.EmiStatusPaid),
		emi(2, intPtr(2), "", domain.EmiStatusPaid),
	})

	assert.Nil(t, NextPayable(ordered))
	assert.True(t, AllPaid(ordered))
}

func TestIsPayableNow_NilNext(t *testing.T) {
	row := emi(1, nil, "", domain.EmiStatusPending)
	assert.False(t, IsPayableNow(&row, nil))
}

func randomSchedule(r *rand.Rand) []domain.EmiInstallment {
	statuses := []domain.EmiStatus{domain.EmiStatusPaid, domain.EmiStatusPending, domain.EmiStatusLate}
	n := r.Intn(15)
	emis := make([]domain.EmiInstallment, 0, n)
	for i := 0; i < n; i++ {
		var number *int
		if r.Intn(3) > 0 {
			number = intPtr(r.Intn(20) + 1)
		}
		due := ""
		if r.Intn(2) == 0 {
			due = "2025-" + string(rune('0'+r.Intn(2))) + string(rune('1'+r.Intn(9))) + "-01"
		}
		emis = append(emis, emi(int64(r.Intn(1000)+1), number, due, statuses[r.Intn(len(statuses))]))
	}
	return emis
}

func TestNextPayable_NeverPaid(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		emis := randomSchedule(r)
		next := NextPayable(Order(emis))
		if next == nil {
			for _, e := range emis {
				assert.Equal(t, domain.EmiStatusPaid, e.Status)
			}
			continue
		}
		assert.NotEqual(t, domain.EmiStatusPaid, next.Status)
	}
}

func TestIsPayableNow_AtMostOne(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		ordered := Order(randomSchedule(r))
		next := NextPayable(ordered)

		payable := map[int64]bool{}
		for j := range ordered {
			if IsPayableNow(&ordered[j], next) {
				payable[ordered[j].ID] = true
			}
		}
		assert.LessOrEqual(t, len(payable), 1)
	}
}

func TestCheckPayable(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(11, intPtr(1), "", domain.EmiStatusPaid),
		emi(12, intPtr(2), "", domain.EmiStatusPending),
		emi(13, intPtr(3), "", domain.EmiStatusPending),
	}

	assert.NoError(t, CheckPayable(emis, 12))
	assert.ErrorIs(t, CheckPayable(emis, 11), domain.ErrEmiAlreadyPaid)
	assert.ErrorIs(t, CheckPayable(emis, 99), domain.ErrEmiNotInSchedule)

	err := CheckPayable(emis, 13)
	var orderErr domain.ErrMustPayEarlierEmi
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, int64(12), orderErr.Expected)
	assert.Equal(t, int64(13), orderErr.Requested)
	assert.ErrorIs(t, err, domain.ErrOutOfOrderEmi)
}

func TestCheckPayable_LateBlocksLaterRows(t *testing.T) {
	emis := []domain.EmiInstallment{
		emi(1, intPtr(1), "", domain.EmiStatusLate),
		emi(2, intPtr(2), "", domain.EmiStatusPending),
	}

	var orderErr domain.ErrMustPayEarlierEmi
	require.ErrorAs(t, CheckPayable(emis, 2), &orderErr)
	assert.Equal(t, int64(1), orderErr.Expected)
	assert.Equal(t, int64(2), orderErr.Requested)

	// the late row is next but only PENDING rows are payable
	err := CheckPayable(emis, 1)
	assert.ErrorIs(t, err, domain.ErrEmiNotPending)
	assert.NotErrorIs(t, err, domain.ErrOutOfOrderEmi)
}

func TestSummaryHelpers(t *testing.T) {
	emis := []domain.EmiInstallment{
		{ID: 3, EmiNumber: intPtr(3), Status: domain.EmiStatusPending},
		{ID: 2, EmiNumber: intPtr(2), Status: domain.EmiStatusPaid, PaymentDate: "2025-02-03"},
		{ID: 1, EmiNumber: intPtr(1), Status: domain.EmiStatusPaid, PaymentDate: "2025-01-04"},
	}

	assert.Equal(t, 2, PaidCount(emis))
	assert.False(t, AllPaid(emis))
	assert.Equal(t, "2025-02-03", LastPaymentDate(emis))
	assert.Equal(t, "", LastPaymentDate(nil))
	assert.False(t, AllPaid(nil))
}

func TestFilter_Apply(t *testing.T) {
	ordered := Order([]domain.EmiInstallment{
		emi(1, intPtr(1), "2025-01-10", domain.EmiStatusPaid),
		emi(2, intPtr(2), "2025-02-10", domain.EmiStatusPending),
		emi(3, intPtr(3), "", domain.EmiStatusPending),
		emi(4, intPtr(4), "2025-04-10", domain.EmiStatusPending),
	})

	t.Run("all", func(t *testing.T) {
		assert.Len(t, Filter{Status: "ALL"}.Apply(ordered), 4)
		assert.True(t, Filter{Status: "all"}.IsZero())
	})

	t.Run("status", func(t *testing.T) {
		assert.Equal(t, []int64{1}, ids(Filter{Status: "PAID"}.Apply(ordered)))
	})

	t.Run("due range keeps undated rows", func(t *testing.T) {
		rows := Filter{DueFrom: "2025-02-01", DueTo: "2025-03-31"}.Apply(ordered)
		assert.Equal(t, []int64{2, 3}, ids(rows))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		rows := Filter{DueFrom: "2025-02-10", DueTo: "2025-02-10"}.Apply(ordered)
		assert.Equal(t, []int64{2, 3}, ids(rows))
	})

	t.Run("unparseable bound ignored", func(t *testing.T) {
		assert.Len(t, Filter{DueFrom: "soon"}.Apply(ordered), 4)
	})
}
