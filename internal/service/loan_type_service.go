package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// LoanTypeService manages the loan product configuration
type LoanTypeService struct {
	admin          domain.AdminLoanGateway
	eventPublisher websocket.EventPublisher
}

// NewLoanTypeService creates a new LoanTypeService
func NewLoanTypeService(admin domain.AdminLoanGateway) *LoanTypeService {
	return &LoanTypeService{admin: admin}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LoanTypeService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// ListLoanTypes lists the configured loan products
func (s *LoanTypeService) ListLoanTypes(ctx context.Context, session domain.Session) ([]domain.LoanType, error) {
	return s.admin.ListLoanTypes(ctx, session)
}

// UpdateLoanType validates and saves a loan product
func (s *LoanTypeService) UpdateLoanType(ctx context.Context, session domain.Session, id int64, input domain.LoanType) (*domain.LoanType, error) {
	input.ID = id
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.admin.UpdateLoanType(ctx, session, &input)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("subject", session.Subject).
		Int64("loan_type_id", id).
		Str("name", updated.Name).
		Msg("Loan type updated")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, websocket.LoanTypeUpdated(updated))
	}
	return updated, nil
}
