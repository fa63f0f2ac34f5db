package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
	"github.com/smartlend/smartlend/smartlend-portal/internal/reconcile"
	"github.com/smartlend/smartlend/smartlend-portal/internal/schedule"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// LoanSummary is a loan as listed in the EMI view
type LoanSummary struct {
	domain.Loan
	Figures     reconcile.LoanFigures  `json:"figures"`
	NextPayable *domain.EmiInstallment `json:"nextPayable,omitempty"`
}

// ScheduleView is everything the EMI screen needs for one loan
type ScheduleView struct {
	LoanID      int64                  `json:"loanId"`
	Status      domain.LoanStatus      `json:"status"`
	Available   bool                   `json:"available"`
	Figures     reconcile.LoanFigures  `json:"figures"`
	NextPayable *domain.EmiInstallment `json:"nextPayable,omitempty"`
	Filter      schedule.Filter        `json:"filter"`
	Window      schedule.View          `json:"window"`
}

// PaymentResult is the outcome of a successful payment
type PaymentResult struct {
	Emi      *domain.EmiInstallment `json:"emi"`
	Schedule *ScheduleView          `json:"schedule,omitempty"`
}

// EmiService builds EMI schedule views and gates payments
type EmiService struct {
	loans          domain.LoanGateway
	eventPublisher websocket.EventPublisher
}

// NewEmiService creates a new EmiService
func NewEmiService(loans domain.LoanGateway) *EmiService {
	return &EmiService{loans: loans}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *EmiService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *EmiService) publishEvent(channel string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(channel, event)
	}
}

// hiddenFromEmiView reports loans that have no repayment schedule to show
func hiddenFromEmiView(status domain.LoanStatus) bool {
	return status == domain.LoanStatusRejected || status == domain.LoanStatusSubmitted
}

// GetLoans lists the customer's loans that have a repayment schedule
func (s *EmiService) GetLoans(ctx context.Context, session domain.Session) ([]LoanSummary, error) {
	loans, err := s.loans.GetCustomerLoans(ctx, session)
	if err != nil {
		return nil, err
	}

	summaries := make([]LoanSummary, 0, len(loans))
	for i := range loans {
		loan := &loans[i]
		if hiddenFromEmiView(loan.Status) {
			continue
		}
		pack := &domain.LoanWithEmiPack{LoanID: loan.ID, Emis: loan.Emis}
		summaries = append(summaries, LoanSummary{
			Loan:        *loan,
			Figures:     reconcile.ForLoan(loan, pack),
			NextPayable: schedule.NextPayable(schedule.Order(loan.Emis)),
		})
	}
	return summaries, nil
}

// findLoan looks a loan up among the session customer's loans
func findLoan(ctx context.Context, loans domain.LoanGateway, session domain.Session, loanID int64) (*domain.Loan, error) {
	all, err := loans.GetCustomerLoans(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == loanID {
			loan := all[i]
			if loan.CustomerName == "" {
				loan.CustomerName = session.Name
			}
			return &loan, nil
		}
	}
	return nil, domain.ErrLoanNotFound
}

// GetSchedule returns the ordered, filtered and windowed schedule of a loan.
// REJECTED loans have no schedule and come back with Available false.
func (s *EmiService) GetSchedule(ctx context.Context, session domain.Session, loanID int64, filter schedule.Filter, expanded bool) (*ScheduleView, error) {
	loan, err := findLoan(ctx, s.loans, session, loanID)
	if err != nil {
		return nil, err
	}

	view := &ScheduleView{LoanID: loanID, Status: loan.Status, Filter: filter}
	if loan.Status == domain.LoanStatusRejected {
		view.Window = schedule.Window(nil, nil, expanded)
		return view, nil
	}

	pack, err := s.loans.GetLoanWithEmis(ctx, session, loanID)
	if err != nil {
		return nil, err
	}

	ordered := schedule.Order(pack.Emis)
	view.Available = true
	view.Figures = reconcile.ForLoan(loan, pack)
	view.NextPayable = schedule.NextPayable(ordered)
	view.Window = schedule.Window(ordered, filter.Apply(ordered), expanded)
	return view, nil
}

// GetStatusHistory returns the status transitions of one of the customer's loans
func (s *EmiService) GetStatusHistory(ctx context.Context, session domain.Session, loanID int64) ([]domain.StatusHistoryEntry, error) {
	if _, err := findLoan(ctx, s.loans, session, loanID); err != nil {
		return nil, err
	}
	return s.loans.GetStatusHistory(ctx, session, loanID)
}

// PayEmi pays one installment. The schedule is checked locally first and
// nothing is sent upstream unless emiID is the next payable installment of
// a loan the session owns.
func (s *EmiService) PayEmi(ctx context.Context, session domain.Session, loanID, emiID int64) (*PaymentResult, error) {
	if _, err := findLoan(ctx, s.loans, session, loanID); err != nil {
		return nil, err
	}

	pack, err := s.loans.GetLoanWithEmis(ctx, session, loanID)
	if err != nil {
		return nil, err
	}

	if err := schedule.CheckPayable(pack.Emis, emiID); err != nil {
		outcome := metrics.PaymentRejected
		if errors.Is(err, domain.ErrOutOfOrderEmi) {
			outcome = metrics.PaymentOutOfOrder
		}
		metrics.EmiPaymentsTotal.WithLabelValues(outcome).Inc()
		log.Info().
			Err(err).
			Str("subject", session.Subject).
			Int64("loan_id", loanID).
			Int64("emi_id", emiID).
			Msg("EMI payment blocked")
		return nil, err
	}

	paid, err := s.loans.PayEmi(ctx, session, emiID)
	if err != nil {
		outcome := metrics.PaymentFailed
		if errors.Is(err, domain.ErrUpstreamRejected) {
			outcome = metrics.PaymentRejected
		}
		metrics.EmiPaymentsTotal.WithLabelValues(outcome).Inc()
		log.Warn().
			Err(err).
			Str("subject", session.Subject).
			Int64("loan_id", loanID).
			Int64("emi_id", emiID).
			Msg("EMI payment failed")
		return nil, err
	}
	metrics.EmiPaymentsTotal.WithLabelValues(metrics.PaymentAccepted).Inc()
	if paid.LoanID == 0 {
		paid.LoanID = loanID
	}

	log.Info().
		Str("subject", session.Subject).
		Int64("loan_id", loanID).
		Int64("emi_id", emiID).
		Str("transaction_ref", paid.TransactionRef).
		Msg("EMI paid")

	event := websocket.EmiPaid(map[string]any{
		"loanId":         loanID,
		"emiId":          emiID,
		"transactionRef": paid.TransactionRef,
	})
	s.publishEvent(websocket.CustomerChannel(session.UserID), event)
	s.publishEvent(websocket.AdminChannel, event)

	result := &PaymentResult{Emi: paid}
	view, err := s.GetSchedule(ctx, session, loanID, schedule.Filter{}, false)
	if err != nil {
		log.Warn().Err(err).Int64("loan_id", loanID).Msg("Failed to refresh schedule after payment")
		return result, nil
	}
	result.Schedule = view
	return result, nil
}
