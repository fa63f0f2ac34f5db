package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/apiclient"
	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/middleware"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Status        int               `json:"status"`
	Detail        string            `json:"detail,omitempty"`
	Instance      string            `json:"instance,omitempty"`
	Errors        []ValidationError `json:"errors,omitempty"`
	ExpectedEmiID *int64            `json:"expectedEmiId,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://smartlend.app/errors/validation"
	ErrorTypeNotFound     = "https://smartlend.app/errors/not-found"
	ErrorTypeUnauthorized = "https://smartlend.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://smartlend.app/errors/forbidden"
	ErrorTypeConflict     = "https://smartlend.app/errors/conflict"
	ErrorTypeOutOfOrder   = "https://smartlend.app/errors/emi-out-of-order"
	ErrorTypeRejected     = "https://smartlend.app/errors/upstream-rejected"
	ErrorTypeUpstream     = "https://smartlend.app/errors/upstream-unavailable"
	ErrorTypeInternal     = "https://smartlend.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail)
}

// NewOutOfOrderError tells the caller which installment has to be paid first
func NewOutOfOrderError(c echo.Context, expected int64, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:          ErrorTypeOutOfOrder,
		Title:         "EMI Out Of Order",
		Status:        http.StatusConflict,
		Detail:        detail,
		Instance:      c.Request().URL.Path,
		ExpectedEmiID: &expected,
	})
}

// NewUpstreamRejectedError relays a refusal from the loan service
func NewUpstreamRejectedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnprocessableEntity, ErrorTypeRejected, "Rejected By Loan Service", detail)
}

// NewUpstreamError reports that the loan service could not be reached
func NewUpstreamError(c echo.Context, detail string) error {
	return problem(c, http.StatusBadGateway, ErrorTypeUpstream, "Loan Service Unavailable", detail)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

func problem(c echo.Context, status int, typ, title, detail string) error {
	return c.JSON(status, ProblemDetails{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// validationErrors lists the domain errors that are the caller's fault, with
// the request field each one refers to
var validationErrors = []struct {
	err   error
	field string
}{
	{domain.ErrLoanStatusInvalid, "status"},
	{domain.ErrStatusCommentRequired, "comment"},
	{domain.ErrStatusCommentTooLong, "comment"},
	{domain.ErrLoanTypeNameEmpty, "name"},
	{domain.ErrLoanTypeNameTooLong, "name"},
	{domain.ErrLoanTypeInterestInvalid, "interestRate"},
	{domain.ErrLoanTypeMaxLoansInvalid, "maxLoansPerCustomer"},
	{domain.ErrLoanTypeTenureInvalid, "maxTenureYears"},
	{domain.ErrLoanTypeAmountInvalid, "maxLoanAmount"},
	{domain.ErrLoanTypePenaltyInvalid, "penaltyRatePercent"},
	{domain.ErrChatMessageEmpty, "message"},
	{domain.ErrChatMessageTooLong, "message"},
	{domain.ErrInvalidInput, ""},
}

// respondError maps a service error onto a problem response. Unexpected
// errors are logged with the request's fields.
func respondError(c echo.Context, err error, action string) error {
	for _, v := range validationErrors {
		if errors.Is(err, v.err) {
			var fields []ValidationError
			if v.field != "" {
				fields = []ValidationError{{Field: v.field, Message: v.err.Error()}}
			}
			return NewValidationError(c, "Validation failed", fields)
		}
	}

	var orderErr domain.ErrMustPayEarlierEmi
	if errors.As(err, &orderErr) {
		return NewOutOfOrderError(c, orderErr.Expected, orderErr.Error())
	}

	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		return NewNotFoundError(c, "Loan not found")
	case errors.Is(err, domain.ErrEmiNotFound), errors.Is(err, domain.ErrEmiNotInSchedule):
		return NewNotFoundError(c, "EMI not found")
	case errors.Is(err, domain.ErrLoanTypeNotFound):
		return NewNotFoundError(c, "Loan type not found")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Resource not found")
	case errors.Is(err, domain.ErrEmiAlreadyPaid),
		errors.Is(err, domain.ErrNoPayableEmi),
		errors.Is(err, domain.ErrEmiNotPending),
		errors.Is(err, domain.ErrEmiNotPaid),
		errors.Is(err, domain.ErrLoanNotCleared),
		errors.Is(err, domain.ErrLoanRejected):
		return NewConflictError(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return NewUnauthorizedError(c, "Session is no longer valid")
	case errors.Is(err, domain.ErrForbidden):
		return NewForbiddenError(c, "Not allowed")
	case errors.Is(err, domain.ErrUpstreamRejected):
		return NewUpstreamRejectedError(c, upstreamDetail(err, "The loan service rejected the request"))
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		requestLogger(c).Warn().Err(err).Msg(action)
		return NewUpstreamError(c, "The loan service is not reachable, please retry")
	}

	requestLogger(c).Error().Err(err).Msg(action)
	return NewInternalError(c, action)
}

func upstreamDetail(err error, fallback string) string {
	var upErr *apiclient.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return fallback
}

// requestLogger is the global logger carrying the request id and subject
func requestLogger(c echo.Context) *zerolog.Logger {
	ctx := log.With().
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	if session := middleware.GetSession(c); session != nil {
		ctx = ctx.Str("subject", session.Subject)
	}
	logger := ctx.Logger()
	return &logger
}

// parseID reads a positive integer path parameter
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// sessionOf returns the caller's session, or nil when the route is not behind auth
func sessionOf(c echo.Context) *domain.Session {
	return middleware.GetSession(c)
}
