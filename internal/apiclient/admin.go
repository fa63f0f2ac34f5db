package apiclient

import (
	"context"
	"net/http"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// ListLoans lists every loan application for review
func (c *Client) ListLoans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	var raw []rawLoan
	if err := c.do(ctx, "admin_list_loans", session, http.MethodGet, "/admin/loans", nil, &raw); err != nil {
		return nil, err
	}
	return loansToDomain(raw), nil
}

// GetLoan fetches one loan application
func (c *Client) GetLoan(ctx context.Context, session domain.Session, loanID int64) (*domain.Loan, error) {
	var raw rawLoan
	if err := c.do(ctx, "admin_get_loan", session, http.MethodGet, "/admin/loans/"+itoa(loanID), nil, &raw); err != nil {
		return nil, err
	}
	loan := raw.toDomain()
	if loan.ID == 0 {
		loan.ID = loanID
	}
	return &loan, nil
}

type statusUpdateRequest struct {
	Status   domain.LoanStatus `json:"status"`
	Comments string            `json:"comments"`
}

// UpdateLoanStatus moves a loan to status, recording comment in its history
func (c *Client) UpdateLoanStatus(ctx context.Context, session domain.Session, loanID int64, status domain.LoanStatus, comment string) error {
	body := statusUpdateRequest{Status: status, Comments: comment}
	return c.do(ctx, "admin_update_status", session, http.MethodPut, "/admin/loans/"+itoa(loanID), body, nil)
}

// DeleteLoan removes a loan application
func (c *Client) DeleteLoan(ctx context.Context, session domain.Session, loanID int64) error {
	return c.do(ctx, "admin_delete_loan", session, http.MethodDelete, "/admin/loans/"+itoa(loanID), nil, nil)
}

// ListLoanTypes lists the configured loan products
func (c *Client) ListLoanTypes(ctx context.Context, session domain.Session) ([]domain.LoanType, error) {
	var raw []rawLoanType
	if err := c.do(ctx, "admin_list_loan_types", session, http.MethodGet, "/admin/loan-types", nil, &raw); err != nil {
		return nil, err
	}
	types := make([]domain.LoanType, 0, len(raw))
	for i := range raw {
		types = append(types, raw[i].toDomain())
	}
	return types, nil
}

// UpdateLoanType replaces a loan product's configuration
func (c *Client) UpdateLoanType(ctx context.Context, session domain.Session, loanType *domain.LoanType) (*domain.LoanType, error) {
	var raw rawLoanType
	path := "/admin/loan-types/" + itoa(loanType.ID)
	if err := c.do(ctx, "admin_update_loan_type", session, http.MethodPut, path, newLoanTypePayload(loanType), &raw); err != nil {
		return nil, err
	}
	updated := raw.toDomain()
	if updated.ID == 0 {
		updated = *loanType
	}
	return &updated, nil
}
