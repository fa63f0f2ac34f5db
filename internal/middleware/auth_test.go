package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

const (
	testSecret   = "portal-test-secret"
	testIssuer   = "smartlend"
	testAudience = "smartlend-portal"
)

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	base := jwt.MapClaims{
		"iss": testIssuer,
		"aud": testAudience,
		"sub": "asha",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		base[k] = v
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, base).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newTestAuth(t *testing.T) *SessionAuth {
	t.Helper()
	auth, err := NewSessionAuth(testSecret, testIssuer, testAudience)
	require.NoError(t, err)
	return auth
}

func TestNewSessionAuth_RequiresSecret(t *testing.T) {
	_, err := NewSessionAuth("", testIssuer, testAudience)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		token   string
		wantErr bool
		want    *domain.Session
	}{
		{
			name:  "customer token",
			token: mintToken(t, testSecret, jwt.MapClaims{"role": "CUSTOMER", "userId": 7, "name": "Asha Rao"}),
			want:  &domain.Session{Subject: "asha", UserID: 7, Role: domain.RoleCustomer, Name: "Asha Rao"},
		},
		{
			name:  "admin token",
			token: mintToken(t, testSecret, jwt.MapClaims{"sub": "ops", "role": "ADMIN"}),
			want:  &domain.Session{Subject: "ops", Role: domain.RoleAdmin},
		},
		{
			name:    "wrong secret",
			token:   mintToken(t, "other-secret", jwt.MapClaims{"role": "CUSTOMER", "userId": 7}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   mintToken(t, testSecret, jwt.MapClaims{"role": "CUSTOMER", "userId": 7, "exp": time.Now().Add(-time.Hour).Unix()}),
			wantErr: true,
		},
		{
			name:    "wrong audience",
			token:   mintToken(t, testSecret, jwt.MapClaims{"role": "CUSTOMER", "userId": 7, "aud": "someone-else"}),
			wantErr: true,
		},
		{
			name:    "unknown role",
			token:   mintToken(t, testSecret, jwt.MapClaims{"role": "AUDITOR"}),
			wantErr: true,
		},
		{
			name:    "customer without user id",
			token:   mintToken(t, testSecret, jwt.MapClaims{"role": "CUSTOMER"}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := auth.ValidateToken(ctx, tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			tt.want.Token = tt.token
			assert.Equal(t, tt.want, session)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	auth := newTestAuth(t)
	token := mintToken(t, testSecret, jwt.MapClaims{"role": "CUSTOMER", "userId": 7})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen *domain.Session
			h := auth.Authenticate()(func(c echo.Context) error {
				seen = GetSession(c)
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, h(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, int64(7), seen.UserID)
				assert.Equal(t, token, seen.Token)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), "https://smartlend.app/errors/unauthorized")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	tests := []struct {
		name       string
		session    *domain.Session
		wantStatus int
	}{
		{name: "no session", session: nil, wantStatus: http.StatusUnauthorized},
		{name: "customer", session: &domain.Session{Subject: "asha", Role: domain.RoleCustomer}, wantStatus: http.StatusForbidden},
		{name: "admin", session: &domain.Session{Subject: "ops", Role: domain.RoleAdmin}, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/loans", nil)
			if tt.session != nil {
				req = req.WithContext(WithSession(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, RequireRole(domain.RoleAdmin)(next)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Nil(t, GetSession(c))

	s := &domain.Session{Subject: "asha"}
	c.SetRequest(req.WithContext(WithSession(req.Context(), s)))
	assert.Same(t, s, GetSession(c))
}
