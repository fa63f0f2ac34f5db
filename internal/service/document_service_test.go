package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/testutil"
)

func setupDocumentService() (*DocumentService, *testutil.MockLoanGateway, *testutil.MockDocumentStore, *testutil.MockDocumentRepository) {
	gateway := testutil.NewMockLoanGateway()
	gateway.Loans = []domain.Loan{
		{ID: 1, Status: domain.LoanStatusApproved},
		{ID: 5, Status: domain.LoanStatusClosed, ClosedAt: "2025-05-01"},
	}
	gateway.Packs[1] = fourMonthPack(1)
	gateway.Packs[5] = fourMonthPack(5)

	renderer := document.NewRenderer(document.DefaultBrand())
	renderer.SetClock(func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) })

	store := testutil.NewMockDocumentStore()
	repo := testutil.NewMockDocumentRepository()
	svc := NewDocumentService(gateway, renderer)
	svc.SetArchive(store, repo)
	return svc, gateway, store, repo
}

func TestReceipt_PaidInstallment(t *testing.T) {
	svc, _, store, repo := setupDocumentService()

	doc, err := svc.Receipt(context.Background(), customer, 1, 101)
	require.NoError(t, err)
	assert.Equal(t, "RCPT-000101.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))

	require.Len(t, repo.Records, 1)
	record := repo.Records[0]
	assert.Equal(t, domain.DocumentReceipt, record.Kind)
	assert.Equal(t, int64(1), record.LoanID)
	require.NotNil(t, record.EmiID)
	assert.Equal(t, int64(101), *record.EmiID)
	assert.Equal(t, "asha", record.IssuedTo)
	assert.True(t, strings.HasSuffix(record.ObjectPath, "/RCPT-000101.pdf"))
	assert.Equal(t, doc.Data, store.Objects[record.ObjectPath])
}

func TestReceipt_LateInstallmentIsAllowed(t *testing.T) {
	svc, gateway, _, _ := setupDocumentService()
	gateway.Packs[1].Emis[1].Status = domain.EmiStatusLate

	_, err := svc.Receipt(context.Background(), customer, 1, 102)
	assert.NoError(t, err)
}

func TestReceipt_PendingInstallment(t *testing.T) {
	svc, _, store, _ := setupDocumentService()

	doc, err := svc.Receipt(context.Background(), customer, 1, 102)
	assert.ErrorIs(t, err, domain.ErrEmiNotPaid)
	assert.Nil(t, doc)
	assert.Empty(t, store.Objects)
}

func TestReceipt_UnknownInstallment(t *testing.T) {
	svc, _, _, _ := setupDocumentService()

	_, err := svc.Receipt(context.Background(), customer, 1, 999)
	assert.ErrorIs(t, err, domain.ErrEmiNotFound)
}

func TestReceipt_OtherCustomersLoan(t *testing.T) {
	svc, _, _, _ := setupDocumentService()

	_, err := svc.Receipt(context.Background(), customer, 42, 101)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestReceipt_ArchiveFailureDoesNotFailDownload(t *testing.T) {
	svc, _, store, repo := setupDocumentService()
	store.UploadErr = errors.New("bucket unavailable")

	doc, err := svc.Receipt(context.Background(), customer, 1, 101)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)
	assert.Empty(t, repo.Records)
}

func TestReceipt_LedgerFailureRemovesObject(t *testing.T) {
	svc, _, store, repo := setupDocumentService()
	repo.CreateErr = errors.New("database down")

	_, err := svc.Receipt(context.Background(), customer, 1, 101)
	require.NoError(t, err)
	assert.Empty(t, store.Objects)
	assert.Len(t, store.Deleted, 1)
}

func TestReceipt_WithoutArchive(t *testing.T) {
	gateway := testutil.NewMockLoanGateway()
	gateway.Loans = []domain.Loan{{ID: 1, Status: domain.LoanStatusApproved}}
	gateway.Packs[1] = fourMonthPack(1)
	svc := NewDocumentService(gateway, document.NewRenderer(document.DefaultBrand()))

	assert.False(t, svc.ArchiveEnabled())
	doc, err := svc.Receipt(context.Background(), customer, 1, 101)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)

	docs, err := svc.ListDocuments(context.Background(), customer, 1)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClosureCertificate_NotCleared(t *testing.T) {
	svc, _, _, _ := setupDocumentService()

	_, err := svc.ClosureCertificate(context.Background(), customer, 1)
	assert.ErrorIs(t, err, domain.ErrLoanNotCleared)
}

func TestClosureCertificate_ClosedLoan(t *testing.T) {
	svc, _, _, repo := setupDocumentService()

	doc, err := svc.ClosureCertificate(context.Background(), customer, 5)
	require.NoError(t, err)
	assert.Equal(t, "NOC_000005.pdf", doc.Filename)
	require.Len(t, repo.Records, 1)
	assert.Equal(t, domain.DocumentNOC, repo.Records[0].Kind)
	assert.Nil(t, repo.Records[0].EmiID)
}

func TestClosureCertificate_AllPaid(t *testing.T) {
	svc, gateway, _, _ := setupDocumentService()
	for i := range gateway.Packs[1].Emis {
		gateway.Packs[1].Emis[i].Status = domain.EmiStatusPaid
	}

	_, err := svc.ClosureCertificate(context.Background(), customer, 1)
	assert.NoError(t, err)
}

func TestClosureCertificate_OutstandingHintBlocks(t *testing.T) {
	svc, gateway, _, _ := setupDocumentService()
	for i := range gateway.Packs[1].Emis {
		gateway.Packs[1].Emis[i].Status = domain.EmiStatusPaid
	}
	gateway.Packs[1].RemainingAmount = dec("250")

	_, err := svc.ClosureCertificate(context.Background(), customer, 1)
	assert.ErrorIs(t, err, domain.ErrLoanNotCleared)
}

func TestListDocuments_SignsURLs(t *testing.T) {
	svc, _, _, _ := setupDocumentService()
	ctx := context.Background()

	_, err := svc.Receipt(ctx, customer, 1, 101)
	require.NoError(t, err)

	other := customer
	other.Subject = "someone-else"
	_, err = svc.Receipt(ctx, other, 1, 101)
	require.NoError(t, err)

	docs, err := svc.ListDocuments(ctx, customer, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].DownloadURL, "RCPT-000101.pdf")
	assert.Contains(t, docs[0].DownloadURL, "expires=900")
}
