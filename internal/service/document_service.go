package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
	"github.com/smartlend/smartlend/smartlend-portal/internal/reconcile"
)

// DefaultDownloadURLExpiry is how long archived document links stay valid
const DefaultDownloadURLExpiry = 15 * time.Minute

// DocumentService renders receipts and closure certificates and, when
// storage is configured, archives every issued document.
type DocumentService struct {
	loans     domain.LoanGateway
	renderer  *document.Renderer
	store     domain.DocumentStore
	repo      domain.DocumentRepository
	urlExpiry time.Duration
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(loans domain.LoanGateway, renderer *document.Renderer) *DocumentService {
	return &DocumentService{
		loans:     loans,
		renderer:  renderer,
		urlExpiry: DefaultDownloadURLExpiry,
	}
}

// SetArchive enables archiving. Either argument may be nil.
func (s *DocumentService) SetArchive(store domain.DocumentStore, repo domain.DocumentRepository) {
	s.store = store
	s.repo = repo
}

// ArchiveEnabled indicates whether issued documents are stored
func (s *DocumentService) ArchiveEnabled() bool {
	return s.store != nil
}

func (s *DocumentService) loadLoan(ctx context.Context, session domain.Session, loanID int64) (*domain.Loan, *domain.LoanWithEmiPack, error) {
	loan, err := findLoan(ctx, s.loans, session, loanID)
	if err != nil {
		return nil, nil, err
	}
	pack, err := s.loans.GetLoanWithEmis(ctx, session, loanID)
	if err != nil {
		return nil, nil, err
	}
	return loan, pack, nil
}

// Receipt renders the payment receipt of a settled installment
func (s *DocumentService) Receipt(ctx context.Context, session domain.Session, loanID, emiID int64) (*document.Document, error) {
	loan, pack, err := s.loadLoan(ctx, session, loanID)
	if err != nil {
		return nil, err
	}

	var emi *domain.EmiInstallment
	for i := range pack.Emis {
		if pack.Emis[i].ID == emiID {
			emi = &pack.Emis[i]
			break
		}
	}
	if emi == nil {
		return nil, domain.ErrEmiNotFound
	}
	if emi.Status == domain.EmiStatusPending {
		return nil, domain.ErrEmiNotPaid
	}

	doc, err := s.renderer.RenderReceipt(emi, loan, pack)
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	metrics.DocumentsRenderedTotal.WithLabelValues("receipt").Inc()

	s.archive(ctx, session, domain.DocumentReceipt, loanID, &emiID, doc)
	return doc, nil
}

// ClosureCertificate renders the no-objection certificate of a cleared loan
func (s *DocumentService) ClosureCertificate(ctx context.Context, session domain.Session, loanID int64) (*document.Document, error) {
	loan, pack, err := s.loadLoan(ctx, session, loanID)
	if err != nil {
		return nil, err
	}
	if !reconcile.IsCleared(loan, pack) {
		return nil, domain.ErrLoanNotCleared
	}

	doc, err := s.renderer.RenderClosureCertificate(loan, pack, pack.Emis)
	if err != nil {
		return nil, fmt.Errorf("render closure certificate: %w", err)
	}
	metrics.DocumentsRenderedTotal.WithLabelValues("noc").Inc()

	s.archive(ctx, session, domain.DocumentNOC, loanID, nil, doc)
	return doc, nil
}

// archive stores doc and records it in the ledger. Failures are logged
// and never reach the caller; the download itself has already succeeded.
func (s *DocumentService) archive(ctx context.Context, session domain.Session, kind domain.DocumentKind, loanID int64, emiID *int64, doc *document.Document) {
	if s.store == nil {
		return
	}

	record := &domain.DocumentRecord{
		ID:        uuid.New(),
		Kind:      kind,
		LoanID:    loanID,
		EmiID:     emiID,
		Filename:  doc.Filename,
		SizeBytes: int64(len(doc.Data)),
		IssuedTo:  session.Subject,
		CreatedAt: time.Now().UTC(),
	}
	record.ObjectPath = fmt.Sprintf("loans/%d/%s/%s", loanID, record.ID, doc.Filename)

	logger := log.With().
		Str("subject", session.Subject).
		Int64("loan_id", loanID).
		Str("kind", string(kind)).
		Logger()

	if err := s.store.Upload(ctx, record.ObjectPath, bytes.NewReader(doc.Data), record.SizeBytes, doc.ContentType); err != nil {
		metrics.DocumentArchiveFailuresTotal.Inc()
		logger.Warn().Err(err).Msg("Failed to archive document")
		return
	}

	if s.repo == nil {
		return
	}
	if err := s.repo.Create(ctx, record); err != nil {
		metrics.DocumentArchiveFailuresTotal.Inc()
		logger.Warn().Err(err).Msg("Failed to record archived document")
		// The ledger has no row for it, so drop the object
		if delErr := s.store.Delete(ctx, record.ObjectPath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", record.ObjectPath).Msg("Failed to remove orphaned document")
		}
		return
	}
	logger.Debug().Str("document_id", record.ID.String()).Msg("Archived document")
}

// ListDocuments returns the documents issued to the session user for a loan,
// each with a short-lived download link
func (s *DocumentService) ListDocuments(ctx context.Context, session domain.Session, loanID int64) ([]*domain.DocumentRecord, error) {
	if _, err := findLoan(ctx, s.loans, session, loanID); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return []*domain.DocumentRecord{}, nil
	}

	records, err := s.repo.ListByLoan(ctx, loanID, session.Subject)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return records, nil
	}
	for _, r := range records {
		url, err := s.store.PresignedURL(ctx, r.ObjectPath, s.urlExpiry)
		if err != nil {
			log.Warn().Err(err).Str("document_id", r.ID.String()).Msg("Failed to sign document URL")
			continue
		}
		r.DownloadURL = url
	}
	return records, nil
}
