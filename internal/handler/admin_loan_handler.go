package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
)

// AdminLoanHandler handles loan review requests from administrators
type AdminLoanHandler struct {
	adminService *service.AdminLoanService
}

// NewAdminLoanHandler creates a new AdminLoanHandler
func NewAdminLoanHandler(adminService *service.AdminLoanService) *AdminLoanHandler {
	return &AdminLoanHandler{adminService: adminService}
}

// UpdateLoanStatusRequest represents the status change request body
type UpdateLoanStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// ListLoans godoc
// @Summary List all loans
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Loan
// @Failure 403 {object} ProblemDetails
// @Router /admin/loans [get]
func (h *AdminLoanHandler) ListLoans(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loans, err := h.adminService.ListLoans(c.Request().Context(), *session)
	if err != nil {
		return respondError(c, err, "Failed to list loans")
	}
	return c.JSON(http.StatusOK, loans)
}

// GetLoan godoc
// @Summary Get a loan
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 200 {object} domain.Loan
// @Failure 404 {object} ProblemDetails
// @Router /admin/loans/{loanId} [get]
func (h *AdminLoanHandler) GetLoan(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	loan, err := h.adminService.GetLoan(c.Request().Context(), *session, loanID)
	if err != nil {
		return respondError(c, err, "Failed to get loan")
	}
	return c.JSON(http.StatusOK, loan)
}

// UpdateStatus godoc
// @Summary Approve, reject or close a loan
// @Description The comment is mandatory and limited to 500 characters
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Param request body UpdateLoanStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /admin/loans/{loanId}/status [put]
func (h *AdminLoanHandler) UpdateStatus(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	var req UpdateLoanStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.adminService.UpdateStatus(c.Request().Context(), *session, loanID, req.Status, req.Comment); err != nil {
		return respondError(c, err, "Failed to update loan status")
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteLoan godoc
// @Summary Delete a loan
// @Tags admin
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /admin/loans/{loanId} [delete]
func (h *AdminLoanHandler) DeleteLoan(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	if err := h.adminService.DeleteLoan(c.Request().Context(), *session, loanID); err != nil {
		return respondError(c, err, "Failed to delete loan")
	}
	return c.NoContent(http.StatusNoContent)
}
