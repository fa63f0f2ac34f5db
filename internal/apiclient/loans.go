package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// GetCustomerLoans lists the session customer's loans
func (c *Client) GetCustomerLoans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	var raw []rawLoan
	if err := c.do(ctx, "customer_loans", session, http.MethodGet, "/customer/loans", nil, &raw); err != nil {
		return nil, err
	}
	return loansToDomain(raw), nil
}

// GetLoanWithEmis fetches a loan with its full EMI schedule
func (c *Client) GetLoanWithEmis(ctx context.Context, session domain.Session, loanID int64) (*domain.LoanWithEmiPack, error) {
	var raw rawPack
	if err := c.do(ctx, "loan_emis", session, http.MethodGet, "/customer/loans/emi/"+itoa(loanID), nil, &raw); err != nil {
		return nil, err
	}
	pack := raw.toDomain()
	if pack.LoanID == 0 {
		pack.LoanID = loanID
	}
	for i := range pack.Emis {
		if pack.Emis[i].LoanID == 0 {
			pack.Emis[i].LoanID = loanID
		}
	}
	return &pack, nil
}

// PayEmi pays one installment and returns it as updated by the loan service
func (c *Client) PayEmi(ctx context.Context, session domain.Session, emiID int64) (*domain.EmiInstallment, error) {
	var raw rawEmi
	if err := c.do(ctx, "pay_emi", session, http.MethodPost, "/customer/loans/emi/pay/"+itoa(emiID), nil, &raw); err != nil {
		return nil, err
	}
	emi := raw.toDomain(0)
	if emi.ID == 0 {
		emi.ID = emiID
	}
	return &emi, nil
}

// GetStatusHistory returns a loan's status transitions in order
func (c *Client) GetStatusHistory(ctx context.Context, session domain.Session, loanID int64) ([]domain.StatusHistoryEntry, error) {
	var raw []rawHistory
	path := "/customer/loans/" + itoa(loanID) + "/status-history"
	if err := c.do(ctx, "status_history", session, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	history := historyToDomain(raw)
	if history == nil {
		history = []domain.StatusHistoryEntry{}
	}
	return history, nil
}

func loansToDomain(raw []rawLoan) []domain.Loan {
	loans := make([]domain.Loan, 0, len(raw))
	for i := range raw {
		loans = append(loans, raw[i].toDomain())
	}
	return loans
}

// DecodeLoan normalises a single loan snapshot in any supported shape
func DecodeLoan(data []byte) (*domain.Loan, error) {
	var raw rawLoan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	loan := raw.toDomain()
	return &loan, nil
}

// DecodeLoans normalises a list of loan snapshots
func DecodeLoans(data []byte) ([]domain.Loan, error) {
	var raw []rawLoan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return loansToDomain(raw), nil
}

// DecodePack normalises a loan-with-EMIs snapshot
func DecodePack(data []byte) (*domain.LoanWithEmiPack, error) {
	var raw rawPack
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	pack := raw.toDomain()
	return &pack, nil
}
