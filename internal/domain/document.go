package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// DocumentKind is the type of a generated document
type DocumentKind string

const (
	DocumentReceipt DocumentKind = "RECEIPT"
	DocumentNOC     DocumentKind = "NOC"
)

// DocumentRecord is a ledger entry for an archived document
type DocumentRecord struct {
	ID          uuid.UUID    `json:"id"`
	Kind        DocumentKind `json:"kind"`
	LoanID      int64        `json:"loanId"`
	EmiID       *int64       `json:"emiId,omitempty"`
	Filename    string       `json:"filename"`
	ObjectPath  string       `json:"-"`
	SizeBytes   int64        `json:"sizeBytes"`
	IssuedTo    string       `json:"issuedTo"`
	CreatedAt   time.Time    `json:"createdAt"`
	DownloadURL string       `json:"downloadUrl,omitempty"`
}

// DocumentRepository persists the document ledger
type DocumentRepository interface {
	Create(ctx context.Context, record *DocumentRecord) error
	ListByLoan(ctx context.Context, loanID int64, issuedTo string) ([]*DocumentRecord, error)
}

// DocumentStore holds the archived document bytes
type DocumentStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, path string) error
	PresignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
