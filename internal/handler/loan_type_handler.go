package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
)

// LoanTypeHandler handles loan product configuration
type LoanTypeHandler struct {
	loanTypeService *service.LoanTypeService
}

// NewLoanTypeHandler creates a new LoanTypeHandler
func NewLoanTypeHandler(loanTypeService *service.LoanTypeService) *LoanTypeHandler {
	return &LoanTypeHandler{loanTypeService: loanTypeService}
}

// UpdateLoanTypeRequest represents the loan type update body. Decimal
// fields accept numbers or numeric strings.
type UpdateLoanTypeRequest struct {
	Name                string              `json:"name"`
	InterestRate        decimal.Decimal     `json:"interestRate"`
	MaxLoansPerCustomer int                 `json:"maxLoansPerCustomer"`
	MaxTenureYears      int                 `json:"maxTenureYears"`
	MaxLoanAmount       decimal.Decimal     `json:"maxLoanAmount"`
	PenaltyRatePercent  decimal.NullDecimal `json:"penaltyRatePercent"`
}

// ListLoanTypes godoc
// @Summary List loan types
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.LoanType
// @Router /admin/loan-types [get]
func (h *LoanTypeHandler) ListLoanTypes(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	types, err := h.loanTypeService.ListLoanTypes(c.Request().Context(), *session)
	if err != nil {
		return respondError(c, err, "Failed to list loan types")
	}
	return c.JSON(http.StatusOK, types)
}

// UpdateLoanType godoc
// @Summary Update a loan type
// @Description Interest 6.5-15%, 1-3 loans per customer, 1-30 years, amount 20,000 to 100 crore, penalty 0-5%
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan type ID"
// @Param request body UpdateLoanTypeRequest true "Loan type"
// @Success 200 {object} domain.LoanType
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /admin/loan-types/{id} [put]
func (h *LoanTypeHandler) UpdateLoanType(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid loan type ID", nil)
	}

	var req UpdateLoanTypeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.loanTypeService.UpdateLoanType(c.Request().Context(), *session, id, domain.LoanType{
		Name:                req.Name,
		InterestRate:        req.InterestRate,
		MaxLoansPerCustomer: req.MaxLoansPerCustomer,
		MaxTenureYears:      req.MaxTenureYears,
		MaxLoanAmount:       req.MaxLoanAmount,
		PenaltyRatePercent:  req.PenaltyRatePercent,
	})
	if err != nil {
		return respondError(c, err, "Failed to update loan type")
	}
	return c.JSON(http.StatusOK, updated)
}
