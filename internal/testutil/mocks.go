package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// MockLoanGateway is a mock implementation of domain.LoanGateway.
// PayEmi marks the installment PAID in Packs so that a refetch sees it.
type MockLoanGateway struct {
	Loans   []domain.Loan
	Packs   map[int64]*domain.LoanWithEmiPack
	History map[int64][]domain.StatusHistoryEntry
	PaidIDs []int64
	Calls   []string

	GetLoansErr error
	GetPackErr  error
	PayEmiFn    func(emiID int64) (*domain.EmiInstallment, error)

	mu sync.Mutex
}

// NewMockLoanGateway creates a new MockLoanGateway
func NewMockLoanGateway() *MockLoanGateway {
	return &MockLoanGateway{
		Packs:   make(map[int64]*domain.LoanWithEmiPack),
		History: make(map[int64][]domain.StatusHistoryEntry),
	}
}

func (m *MockLoanGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many times the named operation was invoked
func (m *MockLoanGateway) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// GetCustomerLoans returns a copy of Loans
func (m *MockLoanGateway) GetCustomerLoans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	m.record("GetCustomerLoans")
	if m.GetLoansErr != nil {
		return nil, m.GetLoansErr
	}
	loans := make([]domain.Loan, len(m.Loans))
	copy(loans, m.Loans)
	return loans, nil
}

// GetLoanWithEmis returns a copy of the pack registered for loanID
func (m *MockLoanGateway) GetLoanWithEmis(ctx context.Context, session domain.Session, loanID int64) (*domain.LoanWithEmiPack, error) {
	m.record("GetLoanWithEmis")
	if m.GetPackErr != nil {
		return nil, m.GetPackErr
	}
	pack, ok := m.Packs[loanID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *pack
	clone.Emis = make([]domain.EmiInstallment, len(pack.Emis))
	copy(clone.Emis, pack.Emis)
	return &clone, nil
}

// PayEmi records the payment and flips the installment to PAID
func (m *MockLoanGateway) PayEmi(ctx context.Context, session domain.Session, emiID int64) (*domain.EmiInstallment, error) {
	m.record("PayEmi")
	if m.PayEmiFn != nil {
		return m.PayEmiFn(emiID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaidIDs = append(m.PaidIDs, emiID)
	for _, pack := range m.Packs {
		for i := range pack.Emis {
			if pack.Emis[i].ID == emiID {
				pack.Emis[i].Status = domain.EmiStatusPaid
				pack.Emis[i].PaymentDate = time.Now().Format("2006-01-02")
				pack.Emis[i].TransactionRef = fmt.Sprintf("TXN-%d", emiID)
				paid := pack.Emis[i]
				return &paid, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// GetStatusHistory returns the history registered for loanID
func (m *MockLoanGateway) GetStatusHistory(ctx context.Context, session domain.Session, loanID int64) ([]domain.StatusHistoryEntry, error) {
	m.record("GetStatusHistory")
	if history, ok := m.History[loanID]; ok {
		return history, nil
	}
	return nil, domain.ErrNotFound
}

// MockAdminLoanGateway is a mock implementation of domain.AdminLoanGateway
type MockAdminLoanGateway struct {
	Loans     map[int64]*domain.Loan
	LoanTypes map[int64]*domain.LoanType
	Updates   []StatusUpdate
	Deleted   []int64
	Err       error
}

// StatusUpdate captures one UpdateLoanStatus call
type StatusUpdate struct {
	LoanID  int64
	Status  domain.LoanStatus
	Comment string
}

// NewMockAdminLoanGateway creates a new MockAdminLoanGateway
func NewMockAdminLoanGateway() *MockAdminLoanGateway {
	return &MockAdminLoanGateway{
		Loans:     make(map[int64]*domain.Loan),
		LoanTypes: make(map[int64]*domain.LoanType),
	}
}

// ListLoans returns all loans ordered by id
func (m *MockAdminLoanGateway) ListLoans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	loans := make([]domain.Loan, 0, len(m.Loans))
	for _, loan := range m.Loans {
		loans = append(loans, *loan)
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

// GetLoan retrieves a loan by id
func (m *MockAdminLoanGateway) GetLoan(ctx context.Context, session domain.Session, loanID int64) (*domain.Loan, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if loan, ok := m.Loans[loanID]; ok {
		return loan, nil
	}
	return nil, domain.ErrNotFound
}

// UpdateLoanStatus records the update and applies it
func (m *MockAdminLoanGateway) UpdateLoanStatus(ctx context.Context, session domain.Session, loanID int64, status domain.LoanStatus, comment string) error {
	if m.Err != nil {
		return m.Err
	}
	loan, ok := m.Loans[loanID]
	if !ok {
		return domain.ErrNotFound
	}
	m.Updates = append(m.Updates, StatusUpdate{LoanID: loanID, Status: status, Comment: comment})
	loan.Status = status
	return nil
}

// DeleteLoan removes a loan
func (m *MockAdminLoanGateway) DeleteLoan(ctx context.Context, session domain.Session, loanID int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Loans[loanID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Loans, loanID)
	m.Deleted = append(m.Deleted, loanID)
	return nil
}

// ListLoanTypes returns all loan types ordered by id
func (m *MockAdminLoanGateway) ListLoanTypes(ctx context.Context, session domain.Session) ([]domain.LoanType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	types := make([]domain.LoanType, 0, len(m.LoanTypes))
	for _, lt := range m.LoanTypes {
		types = append(types, *lt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

// UpdateLoanType replaces a stored loan type
func (m *MockAdminLoanGateway) UpdateLoanType(ctx context.Context, session domain.Session, loanType *domain.LoanType) (*domain.LoanType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.LoanTypes[loanType.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	updated := *loanType
	m.LoanTypes[loanType.ID] = &updated
	return &updated, nil
}

// MockChatGateway is a mock implementation of domain.ChatGateway
type MockChatGateway struct {
	Messages []domain.ChatMessage
	Err      error
	nextID   int64
	mu       sync.Mutex
}

// NewMockChatGateway creates a new MockChatGateway
func NewMockChatGateway() *MockChatGateway {
	return &MockChatGateway{nextID: 1000}
}

// Add appends a message as if another party had sent it
func (m *MockChatGateway) Add(msg domain.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
}

// GetCustomerMessages returns one customer's messages
func (m *MockChatGateway) GetCustomerMessages(ctx context.Context, session domain.Session, customerID int64) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.ChatMessage, 0)
	for _, msg := range m.Messages {
		if msg.CustomerID == customerID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// GetAllChats returns every message
func (m *MockChatGateway) GetAllChats(ctx context.Context, session domain.Session) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.ChatMessage, len(m.Messages))
	copy(out, m.Messages)
	return out, nil
}

// SendCustomerMessage stores a message from the session customer
func (m *MockChatGateway) SendCustomerMessage(ctx context.Context, session domain.Session, message string) (*domain.ChatMessage, error) {
	return m.send(domain.ChatMessage{
		CustomerID:   session.UserID,
		CustomerName: session.Name,
		SenderType:   domain.SenderCustomer,
		Message:      message,
	})
}

// SendAdminMessage stores a reply from the session administrator
func (m *MockChatGateway) SendAdminMessage(ctx context.Context, session domain.Session, customerID int64, message string) (*domain.ChatMessage, error) {
	adminID := session.UserID
	return m.send(domain.ChatMessage{
		CustomerID: customerID,
		AdminID:    &adminID,
		AdminName:  session.Name,
		SenderType: domain.SenderAdmin,
		Message:    message,
	})
}

func (m *MockChatGateway) send(msg domain.ChatMessage) (*domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.nextID++
	msg.ID = m.nextID
	msg.SentAt = time.Now().Format("2006-01-02T15:04:05")
	m.Messages = append(m.Messages, msg)
	return &msg, nil
}

// MockDocumentRepository is a mock implementation of domain.DocumentRepository
type MockDocumentRepository struct {
	Records   []*domain.DocumentRecord
	CreateErr error
}

// NewMockDocumentRepository creates a new MockDocumentRepository
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

// Create stores a ledger row
func (m *MockDocumentRepository) Create(ctx context.Context, record *domain.DocumentRecord) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.Records = append(m.Records, record)
	return nil
}

// ListByLoan returns the rows of one loan issued to one subject
func (m *MockDocumentRepository) ListByLoan(ctx context.Context, loanID int64, issuedTo string) ([]*domain.DocumentRecord, error) {
	out := make([]*domain.DocumentRecord, 0)
	for _, r := range m.Records {
		if r.LoanID == loanID && r.IssuedTo == issuedTo {
			out = append(out, r)
		}
	}
	return out, nil
}

// MockDocumentStore is an in-memory domain.DocumentStore
type MockDocumentStore struct {
	Objects   map[string][]byte
	UploadErr error
	Deleted   []string
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{Objects: make(map[string][]byte)}
}

// Upload stores the object bytes
func (m *MockDocumentStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.Objects[path] = data
	return nil
}

// Delete removes an object
func (m *MockDocumentStore) Delete(ctx context.Context, path string) error {
	delete(m.Objects, path)
	m.Deleted = append(m.Deleted, path)
	return nil
}

// PresignedURL returns a fake signed URL for path
func (m *MockDocumentStore) PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	if _, ok := m.Objects[path]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("https://documents.test/%s?expires=%d", path, int(expiry.Seconds())), nil
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	Channel string
	Event   websocket.Event
}

// MockEventPublisher captures published events
type MockEventPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(channel string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Channel: channel, Event: event})
}

// OnChannel returns the events published to channel
func (m *MockEventPublisher) OnChannel(channel string) []websocket.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]websocket.Event, 0)
	for _, e := range m.Events {
		if e.Channel == channel {
			out = append(out, e.Event)
		}
	}
	return out
}

var (
	_ domain.LoanGateway        = (*MockLoanGateway)(nil)
	_ domain.AdminLoanGateway   = (*MockAdminLoanGateway)(nil)
	_ domain.ChatGateway        = (*MockChatGateway)(nil)
	_ domain.DocumentRepository = (*MockDocumentRepository)(nil)
	_ domain.DocumentStore      = (*MockDocumentStore)(nil)
	_ websocket.EventPublisher  = (*MockEventPublisher)(nil)
)
