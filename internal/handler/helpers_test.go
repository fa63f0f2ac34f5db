package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/middleware"
)

var (
	customerSession = domain.Session{Token: "customer-token", Subject: "asha", UserID: 7, Role: domain.RoleCustomer, Name: "Asha Rao"}
	adminSession    = domain.Session{Token: "admin-token", Subject: "ops", UserID: 1, Role: domain.RoleAdmin, Name: "Ops"}
)

func intPtr(v int) *int { return &v }

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// threeMonthPack is a 3-installment schedule with the first one paid
func threeMonthPack(loanID int64) *domain.LoanWithEmiPack {
	emis := make([]domain.EmiInstallment, 0, 3)
	for i := 1; i <= 3; i++ {
		emis = append(emis, domain.EmiInstallment{
			ID:        loanID*100 + int64(i),
			LoanID:    loanID,
			EmiNumber: intPtr(i),
			Amount:    dec("1000"),
			DueDate:   fmt.Sprintf("2025-%02d-05", i),
			Status:    domain.EmiStatusPending,
		})
	}
	emis[0].Status = domain.EmiStatusPaid
	emis[0].PaymentDate = "2025-01-04"
	emis[0].TransactionRef = "TXN-1"
	return &domain.LoanWithEmiPack{
		LoanID:              loanID,
		Principal:           dec("2900"),
		AppliedInterestRate: dec("12"),
		Emis:                emis,
	}
}

// newContext builds an echo context for method/target. session may be nil
// and params alternate name, value.
func newContext(method, target string, body io.Reader, session *domain.Session, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if session != nil {
		s := *session
		req = req.WithContext(middleware.WithSession(req.Context(), &s))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var p ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}
