package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartlend/smartlend/smartlend-portal/internal/schedule"
	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
)

// EmiHandler serves the customer's loans, EMI schedules and payments
type EmiHandler struct {
	emiService *service.EmiService
}

// NewEmiHandler creates a new EmiHandler
func NewEmiHandler(emiService *service.EmiService) *EmiHandler {
	return &EmiHandler{emiService: emiService}
}

// GetLoans godoc
// @Summary List my loans
// @Description Loans of the signed-in customer with reconciled figures. REJECTED and SUBMITTED loans are left out.
// @Tags emis
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.LoanSummary
// @Failure 401 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /loans [get]
func (h *EmiHandler) GetLoans(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loans, err := h.emiService.GetLoans(c.Request().Context(), *session)
	if err != nil {
		return respondError(c, err, "Failed to get loans")
	}
	return c.JSON(http.StatusOK, loans)
}

// GetSchedule godoc
// @Summary EMI schedule of a loan
// @Description Ordered installments, the next payable one, totals and the visible window
// @Tags emis
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Param status query string false "PENDING, PAID or LATE"
// @Param dueFrom query string false "Earliest due date (YYYY-MM-DD)"
// @Param dueTo query string false "Latest due date (YYYY-MM-DD)"
// @Param expanded query bool false "Show every row instead of the compact window"
// @Success 200 {object} service.ScheduleView
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /loans/{loanId}/emis [get]
func (h *EmiHandler) GetSchedule(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	expanded := false
	if raw := c.QueryParam("expanded"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return NewValidationError(c, "Invalid expanded flag", []ValidationError{
				{Field: "expanded", Message: "Must be true or false"},
			})
		}
		expanded = v
	}

	filter := schedule.Filter{
		Status:  c.QueryParam("status"),
		DueFrom: c.QueryParam("dueFrom"),
		DueTo:   c.QueryParam("dueTo"),
	}

	view, err := h.emiService.GetSchedule(c.Request().Context(), *session, loanID, filter, expanded)
	if err != nil {
		return respondError(c, err, "Failed to get EMI schedule")
	}
	return c.JSON(http.StatusOK, view)
}

// GetStatusHistory godoc
// @Summary Status history of a loan
// @Tags emis
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 200 {array} domain.StatusHistoryEntry
// @Failure 404 {object} ProblemDetails
// @Router /loans/{loanId}/status-history [get]
func (h *EmiHandler) GetStatusHistory(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	loanID, ok := parseID(c, "loanId")
	if !ok {
		return NewValidationError(c, "Invalid loan ID", nil)
	}

	history, err := h.emiService.GetStatusHistory(c.Request().Context(), *session, loanID)
	if err != nil {
		return respondError(c, err, "Failed to get status history")
	}
	return c.JSON(http.StatusOK, history)
}

// PayEmi godoc
// @Summary Pay an EMI
// @Description Pays the installment if it is the next payable one. Any other installment is refused with 409 and the expected EMI id, without contacting the loan service.
// @Tags emis
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Param emiId path int true "EMI ID"
// @Success 200 {object} service.PaymentResult
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /loans/{loanId}/emis/{emiId}/pay [post]
func (h *EmiHandler) PayEmi(c echo.Context) error {
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

	result, err := h.emiService.PayEmi(c.Request().Context(), *session, loanID, emiID)
	if err != nil {
		return respondError(c, err, "Failed to pay EMI")
	}
	return c.JSON(http.StatusOK, result)
}
