package apiclient

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// The raw types below mirror every shape the loan service has returned for
// the same concept. They never leave this package: callers only see the
// canonical domain types produced by the toDomain methods.

type rawEmi struct {
	ID                *flexNumber `json:"id"`
	EmiID             *flexNumber `json:"emiId"`
	LoanID            *flexNumber `json:"loanId"`
	EmiNumber         *flexNumber `json:"emiNumber"`
	InstallmentNumber *flexNumber `json:"installmentNumber"`
	Index             *flexNumber `json:"index"`
	Seq               *flexNumber `json:"seq"`
	Amount            *flexNumber `json:"amount"`
	DueDate           flexDate    `json:"dueDate"`
	Status            flexString  `json:"status"`
	PaymentDate       flexDate    `json:"paymentDate"`
	TransactionRef    flexString  `json:"transactionRef"`
	RemainingBalance  *flexNumber `json:"remainingBalance"`
	BalanceAfter      *flexNumber `json:"balanceAfter"`
}

func (r *rawEmi) toDomain(loanID int64) domain.EmiInstallment {
	emi := domain.EmiInstallment{
		ID:               firstID(r.ID, r.EmiID),
		LoanID:           firstID(r.LoanID),
		EmiNumber:        firstInt(r.EmiNumber, r.InstallmentNumber, r.Index, r.Seq),
		Amount:           firstDecimal(r.Amount),
		DueDate:          string(r.DueDate),
		Status:           domain.EmiStatus(normaliseEnum(string(r.Status))),
		PaymentDate:      string(r.PaymentDate),
		TransactionRef:   strings.TrimSpace(string(r.TransactionRef)),
		RemainingBalance: firstDecimal(r.RemainingBalance, r.BalanceAfter),
	}
	if emi.LoanID == 0 {
		emi.LoanID = loanID
	}
	return emi
}

func emisToDomain(raw []rawEmi, loanID int64) []domain.EmiInstallment {
	if raw == nil {
		return nil
	}
	emis := make([]domain.EmiInstallment, 0, len(raw))
	for i := range raw {
		emis = append(emis, raw[i].toDomain(loanID))
	}
	return emis
}

// rawLoanTypeRef is either {"id":..,"name":..} or a bare name string
type rawLoanTypeRef struct {
	ID   int64
	Name string
}

func (r *rawLoanTypeRef) UnmarshalJSON(data []byte) error {
	*r = rawLoanTypeRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err == nil {
			r.Name = name
		}
		return nil
	}
	var obj struct {
		ID         *flexNumber `json:"id"`
		LoanTypeID *flexNumber `json:"loanTypeId"`
		Name       flexString  `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = firstID(obj.ID, obj.LoanTypeID)
	r.Name = string(obj.Name)
	return nil
}

type rawCustomer struct {
	FullName flexString `json:"fullName"`
	Name     flexString `json:"name"`
}

type rawHistory struct {
	Status    flexString `json:"status"`
	Comment   flexString `json:"comment"`
	Comments  flexString `json:"comments"`
	Timestamp flexDate   `json:"timestamp"`
	UpdatedAt flexDate   `json:"updatedAt"`
}

func (r *rawHistory) toDomain() domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		Status:    domain.LoanStatus(normaliseEnum(string(r.Status))),
		Comment:   firstString(string(r.Comment), string(r.Comments)),
		Timestamp: firstString(string(r.Timestamp), string(r.UpdatedAt)),
	}
}

func historyToDomain(raw []rawHistory) []domain.StatusHistoryEntry {
	if raw == nil {
		return nil
	}
	out := make([]domain.StatusHistoryEntry, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toDomain())
	}
	return out
}

type rawLoan struct {
	ID                  *flexNumber    `json:"id"`
	LoanID              *flexNumber    `json:"loanId"`
	Amount              *flexNumber    `json:"amount"`
	Principal           *flexNumber    `json:"principal"`
	TenureYears         *flexNumber    `json:"tenureYears"`
	TenureMonths        *flexNumber    `json:"tenureMonths"`
	TotalEmis           *flexNumber    `json:"totalEmis"`
	AppliedInterestRate *flexNumber    `json:"appliedInterestRate"`
	InterestRate        *flexNumber    `json:"interestRate"`
	EmiAmount           *flexNumber    `json:"emiAmount"`
	LoanStatus          flexString     `json:"loanStatus"`
	Status              flexString     `json:"status"`
	SubmittedAt         flexDate       `json:"submittedAt"`
	ClosedAt            flexDate       `json:"closedAt"`
	LoanType            rawLoanTypeRef `json:"loanType"`
	StatusHistory       []rawHistory   `json:"statusHistory"`
	Customer            *rawCustomer   `json:"customer"`
	CustomerName        flexString     `json:"customerName"`
	Emis                []rawEmi       `json:"emis"`
}

func (r *rawLoan) toDomain() domain.Loan {
	loan := domain.Loan{
		ID:                  firstID(r.ID, r.LoanID),
		Principal:           firstDecimal(r.Principal, r.Amount),
		TenureYears:         firstInt(r.TenureYears),
		TenureMonths:        firstInt(r.TenureMonths),
		TotalEmis:           firstInt(r.TotalEmis),
		AppliedInterestRate: firstDecimal(r.AppliedInterestRate, r.InterestRate),
		EmiAmount:           firstDecimal(r.EmiAmount),
		Status:              domain.LoanStatus(normaliseEnum(firstString(string(r.LoanStatus), string(r.Status)))),
		SubmittedAt:         string(r.SubmittedAt),
		ClosedAt:            string(r.ClosedAt),
		LoanType:            domain.LoanTypeRef{ID: r.LoanType.ID, Name: r.LoanType.Name},
		StatusHistory:       historyToDomain(r.StatusHistory),
	}
	var fullName, name string
	if r.Customer != nil {
		fullName, name = string(r.Customer.FullName), string(r.Customer.Name)
	}
	loan.CustomerName = firstString(fullName, name, string(r.CustomerName))
	loan.Emis = emisToDomain(r.Emis, loan.ID)
	return loan
}

type rawPack struct {
	LoanID              *flexNumber `json:"loanId"`
	ID                  *flexNumber `json:"id"`
	Amount              *flexNumber `json:"amount"`
	Principal           *flexNumber `json:"principal"`
	AppliedInterestRate *flexNumber `json:"appliedInterestRate"`
	InterestRate        *flexNumber `json:"interestRate"`
	TenureYears         *flexNumber `json:"tenureYears"`
	TenureMonths        *flexNumber `json:"tenureMonths"`
	TotalEmis           *flexNumber `json:"totalEmis"`
	EmiAmount           *flexNumber `json:"emiAmount"`
	RemainingEmis       *flexNumber `json:"remainingEmis"`
	RemainingAmount     *flexNumber `json:"remainingAmount"`
	RemainingBalance    *flexNumber `json:"remainingBalance"`
	BalanceAfter        *flexNumber `json:"balanceAfter"`
	Emis                []rawEmi    `json:"emis"`
}

func (r *rawPack) toDomain() domain.LoanWithEmiPack {
	pack := domain.LoanWithEmiPack{
		LoanID:              firstID(r.LoanID, r.ID),
		Principal:           firstDecimal(r.Principal, r.Amount),
		AppliedInterestRate: firstDecimal(r.AppliedInterestRate, r.InterestRate),
		TenureYears:         firstInt(r.TenureYears),
		TenureMonths:        firstInt(r.TenureMonths),
		TotalEmis:           firstInt(r.TotalEmis),
		EmiAmount:           firstDecimal(r.EmiAmount),
		RemainingEmis:       firstInt(r.RemainingEmis),
		RemainingAmount:     firstDecimal(r.RemainingAmount),
		RemainingBalance:    firstDecimal(r.RemainingBalance, r.BalanceAfter),
	}
	pack.Emis = emisToDomain(r.Emis, pack.LoanID)
	if pack.Emis == nil {
		pack.Emis = []domain.EmiInstallment{}
	}
	return pack
}

type rawLoanType struct {
	LoanTypeID          *flexNumber `json:"loanTypeId"`
	ID                  *flexNumber `json:"id"`
	Name                flexString  `json:"name"`
	InterestRate        *flexNumber `json:"interestRate"`
	MaxLoansPerType     *flexNumber `json:"maxLoansPerCustomerPerLoanType"`
	MaxLoansPerCustomer *flexNumber `json:"maxLoansPerCustomer"`
	MaxTenureYears      *flexNumber `json:"maxTenureYears"`
	MaxLoanAmount       *flexNumber `json:"maxLoanAmount"`
	MaxLoanAmountSnake  *flexNumber `json:"max_loan_amount"`
	PenaltyRatePercent  *flexNumber `json:"penaltyRatePercent"`
}

func (r *rawLoanType) toDomain() domain.LoanType {
	lt := domain.LoanType{
		ID:                 firstID(r.LoanTypeID, r.ID),
		Name:               string(r.Name),
		InterestRate:       firstDecimal(r.InterestRate).Decimal,
		MaxLoanAmount:      firstDecimal(r.MaxLoanAmount, r.MaxLoanAmountSnake).Decimal,
		PenaltyRatePercent: firstDecimal(r.PenaltyRatePercent),
	}
	if n := firstInt(r.MaxLoansPerType, r.MaxLoansPerCustomer); n != nil {
		lt.MaxLoansPerCustomer = *n
	}
	if n := firstInt(r.MaxTenureYears); n != nil {
		lt.MaxTenureYears = *n
	}
	return lt
}

// loanTypePayload is the body the loan service expects on update
type loanTypePayload struct {
	LoanTypeID          int64   `json:"loanTypeId"`
	Name                string  `json:"name"`
	InterestRate        string  `json:"interestRate"`
	MaxLoansPerCustomer int     `json:"maxLoansPerCustomerPerLoanType"`
	MaxTenureYears      int     `json:"maxTenureYears"`
	MaxLoanAmount       string  `json:"maxLoanAmount"`
	PenaltyRatePercent  *string `json:"penaltyRatePercent,omitempty"`
}

func newLoanTypePayload(lt *domain.LoanType) loanTypePayload {
	p := loanTypePayload{
		LoanTypeID:          lt.ID,
		Name:                strings.TrimSpace(lt.Name),
		InterestRate:        lt.InterestRate.String(),
		MaxLoansPerCustomer: lt.MaxLoansPerCustomer,
		MaxTenureYears:      lt.MaxTenureYears,
		MaxLoanAmount:       lt.MaxLoanAmount.String(),
	}
	if lt.PenaltyRatePercent.Valid {
		s := lt.PenaltyRatePercent.Decimal.String()
		p.PenaltyRatePercent = &s
	}
	return p
}

type rawChatMessage struct {
	ID           *flexNumber `json:"id"`
	CustomerID   *flexNumber `json:"customerId"`
	CustomerName flexString  `json:"customerName"`
	AdminID      *flexNumber `json:"adminId"`
	AdminName    flexString  `json:"adminName"`
	SenderType   flexString  `json:"senderType"`
	Message      flexString  `json:"message"`
	SentAt       flexDate    `json:"sentAt"`
}

func (r *rawChatMessage) toDomain() domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:           firstID(r.ID),
		CustomerID:   firstID(r.CustomerID),
		CustomerName: string(r.CustomerName),
		AdminName:    string(r.AdminName),
		SenderType:   domain.SenderType(normaliseEnum(string(r.SenderType))),
		Message:      string(r.Message),
		SentAt:       string(r.SentAt),
	}
	if r.AdminID != nil && r.AdminID.set {
		id := r.AdminID.asID()
		msg.AdminID = &id
	}
	return msg
}

func chatToDomain(raw []rawChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(raw))
	for i := range raw {
		out = append(out, raw[i].toDomain())
	}
	return out
}

func normaliseEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
