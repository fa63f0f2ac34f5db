package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// AdminLoanService handles loan review for administrators
type AdminLoanService struct {
	admin          domain.AdminLoanGateway
	eventPublisher websocket.EventPublisher
}

// NewAdminLoanService creates a new AdminLoanService
func NewAdminLoanService(admin domain.AdminLoanGateway) *AdminLoanService {
	return &AdminLoanService{admin: admin}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AdminLoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AdminLoanService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, event)
	}
}

// ListLoans lists every loan application
func (s *AdminLoanService) ListLoans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	return s.admin.ListLoans(ctx, session)
}

// GetLoan retrieves one loan application
func (s *AdminLoanService) GetLoan(ctx context.Context, session domain.Session, loanID int64) (*domain.Loan, error) {
	return s.admin.GetLoan(ctx, session, loanID)
}

// ValidateStatusUpdate normalises and checks a review decision
func ValidateStatusUpdate(status, comment string) (domain.LoanStatus, string, error) {
	st := domain.LoanStatus(strings.ToUpper(strings.TrimSpace(status)))
	switch st {
	case domain.LoanStatusApproved, domain.LoanStatusRejected, domain.LoanStatusClosed:
	default:
		return "", "", domain.ErrLoanStatusInvalid
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return "", "", domain.ErrStatusCommentRequired
	}
	if utf8.RuneCountInString(comment) > domain.MaxStatusCommentLength {
		return "", "", domain.ErrStatusCommentTooLong
	}
	return st, comment, nil
}

// UpdateStatus records a review decision. Input is validated before any
// request is sent.
func (s *AdminLoanService) UpdateStatus(ctx context.Context, session domain.Session, loanID int64, status, comment string) error {
	st, comment, err := ValidateStatusUpdate(status, comment)
	if err != nil {
		return err
	}

	if err := s.admin.UpdateLoanStatus(ctx, session, loanID, st, comment); err != nil {
		return err
	}

	log.Info().
		Str("subject", session.Subject).
		Int64("loan_id", loanID).
		Str("status", string(st)).
		Msg("Loan status updated")

	s.publishEvent(websocket.LoanStatusChanged(map[string]any{
		"loanId":  loanID,
		"status":  st,
		"comment": comment,
	}))
	return nil
}

// DeleteLoan removes a loan application
func (s *AdminLoanService) DeleteLoan(ctx context.Context, session domain.Session, loanID int64) error {
	if err := s.admin.DeleteLoan(ctx, session, loanID); err != nil {
		return err
	}
	log.Info().Str("subject", session.Subject).Int64("loan_id", loanID).Msg("Loan deleted")
	s.publishEvent(websocket.LoanDeleted(map[string]any{"loanId": loanID}))
	return nil
}
