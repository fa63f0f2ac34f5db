package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
)

// DocumentHandler serves EMI receipts and closure certificates
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func sendPDF(c echo.Context, doc *document.Document) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// DownloadReceipt godoc
// @Summary Download an EMI receipt
// @Description PDF receipt for a PAID or LATE installment
// @Tags documents
// @Produce application/pdf
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Param emiId path int true "EMI ID"
// @Success 200 {file} file
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /loans/{loanId}/emis/{emiId}/receipt [get]
func (h *DocumentHandler) DownloadReceipt(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}
	emiID, ok := parseID(c, "emiId")
	if !ok {
		return NewValidationError(c, "Invalid EMI ID", nil)
	}

	doc, err := h.documentService.Receipt(c.Request().Context(), *session, loanID, emiID)
	if err != nil {
		return respondError(c, err, "Failed to render receipt")
	}
	return sendPDF(c, doc)
}

// DownloadClosureCertificate godoc
// @Summary Download the loan closure certificate
// @Description NOC PDF, available once every installment is paid and nothing is outstanding, or the loan is CLOSED
// @Tags documents
// @Produce application/pdf
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 200 {file} file
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /loans/{loanId}/noc [get]
func (h *DocumentHandler) DownloadClosureCertificate(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	doc, err := h.documentService.ClosureCertificate(c.Request().Context(), *session, loanID)
	if err != nil {
		return respondError(c, err, "Failed to render closure certificate")
	}
	return sendPDF(c, doc)
}

// ListDocuments godoc
// @Summary Archived documents of a loan
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 200 {array} domain.DocumentRecord
// @Failure 404 {object} ProblemDetails
// @Router /loans/{loanId}/documents [get]
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	records, err := h.documentService.ListDocuments(c.Request().Context(), *session, loanID)
	if err != nil {
		return respondError(c, err, "Failed to list documents")
	}
	return c.JSON(http.StatusOK, records)
}
