package schedule

import "github.com/smartlend/smartlend/smartlend-portal/internal/domain"

// Row is one displayed installment with its payment gate already resolved
type Row struct {
	domain.EmiInstallment
	DisplayNumber int  `json:"displayNumber"`
	PayableNow    bool `json:"payableNow"`
	Locked        bool `json:"locked"`
	ReceiptReady  bool `json:"receiptReady"`
}

// View is the visible slice of a filtered schedule
type View struct {
	Rows     []Row `json:"rows"`
	Start    int   `json:"start"`
	End      int   `json:"end"`
	Filtered int   `json:"filtered"`
	Total    int   `json:"total"`
	Expanded bool  `json:"expanded"`
	HasMore  bool  `json:"hasMore"`
}

// Window builds the rows to display. ordered is the full schedule in
// canonical order and filtered is the subset that passed the user's filter.
// A collapsed view shows CompactWindowSize rows starting one row before the
// next payable installment.
func Window(ordered, filtered []domain.EmiInstallment, expanded bool) View {
	next := NextPayable(ordered)

	start, end := 0, len(filtered)
	if !expanded {
		start = anchor(ordered, filtered, next) - 1
		if start < 0 {
			start = 0
		}
		end = min(len(filtered), start+CompactWindowSize)
		if start > end {
			start = end
		}
	}

	positions := make(map[int64]int, len(ordered))
	for i := range ordered {
		positions[ordered[i].ID] = i
	}

	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		emi := filtered[i]
		number := positions[emi.ID] + 1
		if emi.EmiNumber != nil {
			number = *emi.EmiNumber
		}
		payable := IsPayableNow(&emi, next)
		rows = append(rows, Row{
			EmiInstallment: emi,
			DisplayNumber:  number,
			PayableNow:     payable,
			Locked:         emi.Status == domain.EmiStatusPending && !payable,
			ReceiptReady:   emi.Status != domain.EmiStatusPending,
		})
	}

	return View{
		Rows:     rows,
		Start:    start,
		End:      end,
		Filtered: len(filtered),
		Total:    len(ordered),
		Expanded: expanded,
		HasMore:  len(filtered) > CompactWindowSize,
	}
}

// anchor returns the filtered-view index the compact window centres on
func anchor(ordered, filtered []domain.EmiInstallment, next *domain.EmiInstallment) int {
	if next == nil || len(filtered) == 0 {
		return 0
	}
	for i := range filtered {
		if filtered[i].ID == next.ID {
			return i
		}
	}
	// The filter hid the next payable row; fall back to its place in the
	// full schedule, clamped to what is visible.
	for i := range ordered {
		if ordered[i].ID == next.ID {
			return min(i, len(filtered)-1)
		}
	}
	return 0
}
