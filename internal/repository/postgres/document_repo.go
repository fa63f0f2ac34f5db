package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

const documentSchema = `
CREATE TABLE IF NOT EXISTS portal_documents (
    id          UUID PRIMARY KEY,
    kind        TEXT        NOT NULL,
    loan_id     BIGINT      NOT NULL,
    emi_id      BIGINT,
    filename    TEXT        NOT NULL,
    object_path TEXT        NOT NULL,
    size_bytes  BIGINT      NOT NULL,
    issued_to   TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_portal_documents_loan ON portal_documents (loan_id, issued_to, created_at DESC);
`

// DBTX is the part of pgxpool.Pool and pgx.Tx the repository needs
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ domain.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository implements domain.DocumentRepository using PostgreSQL
type DocumentRepository struct {
	db DBTX
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db DBTX) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// EnsureSchema creates the ledger table when it is missing
func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, documentSchema); err != nil {
		return fmt.Errorf("failed to create document ledger: %w", err)
	}
	return nil
}

// Create inserts one ledger row
func (r *DocumentRepository) Create(ctx context.Context, record *domain.DocumentRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var stored pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `
		INSERT INTO portal_documents (id, kind, loan_id, emi_id, filename, object_path, size_bytes, issued_to, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		pgtype.UUID{Bytes: record.ID, Valid: true},
		string(record.Kind),
		record.LoanID,
		record.EmiID,
		record.Filename,
		record.ObjectPath,
		record.SizeBytes,
		record.IssuedTo,
		createdAt,
	).Scan(&stored)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", record.ID, err)
	}
	record.CreatedAt = stored.Time
	return nil
}

// ListByLoan returns the documents of one loan issued to one subject, newest first
func (r *DocumentRepository) ListByLoan(ctx context.Context, loanID int64, issuedTo string) ([]*domain.DocumentRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, loan_id, emi_id, filename, object_path, size_bytes, issued_to, created_at
		FROM portal_documents
		WHERE loan_id = $1 AND issued_to = $2
		ORDER BY created_at DESC`,
		loanID, issuedTo)
	if err != nil {
		return nil, err
	}

	records, err := pgx.CollectRows(rows, scanDocument)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*domain.DocumentRecord{}
	}
	return records, nil
}

func scanDocument(row pgx.CollectableRow) (*domain.DocumentRecord, error) {
	var (
		id        pgtype.UUID
		kind      string
		emiID     pgtype.Int8
		createdAt pgtype.Timestamptz
		rec       domain.DocumentRecord
	)
	if err := row.Scan(&id, &kind, &rec.LoanID, &emiID, &rec.Filename, &rec.ObjectPath, &rec.SizeBytes, &rec.IssuedTo, &createdAt); err != nil {
		return nil, err
	}
	rec.ID = uuid.UUID(id.Bytes)
	rec.Kind = domain.DocumentKind(kind)
	if emiID.Valid {
		v := emiID.Int64
		rec.EmiID = &v
	}
	rec.CreatedAt = createdAt.Time
	return &rec, nil
}
