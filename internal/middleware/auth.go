package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// CustomClaims are the SmartLend specific claims of a session token
type CustomClaims struct {
	Role   domain.Role `json:"role"`
	UserID int64       `json:"userId"`
	Name   string      `json:"name"`
}

// Validate implements validator.CustomClaims
func (c *CustomClaims) Validate(ctx context.Context) error {
	if !c.Role.IsValid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	if c.Role == domain.RoleCustomer && c.UserID <= 0 {
		return errors.New("customer token without userId")
	}
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// SessionKey is the context key for the caller's *domain.Session
	SessionKey contextKey = "session"
)

// SessionAuth validates the HS256 session tokens issued by the loan service
type SessionAuth struct {
	validator *validator.Validator
}

// NewSessionAuth creates a SessionAuth for tokens signed with secret
func NewSessionAuth(secret, issuer, audience string) (*SessionAuth, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	key := []byte(secret)

	jwtValidator, err := validator.New(
		func(ctx context.Context) (interface{}, error) { return key, nil },
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &SessionAuth{validator: jwtValidator}, nil
}

// ValidateToken checks a raw token and returns the session it carries.
// The token itself is kept on the session so it can be forwarded upstream.
func (a *SessionAuth) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims", domain.ErrUnauthorized)
	}
	return sessionFromClaims(token, validated)
}

func sessionFromClaims(token string, claims *validator.ValidatedClaims) (*domain.Session, error) {
	custom, ok := claims.CustomClaims.(*CustomClaims)
	if !ok || custom == nil {
		return nil, fmt.Errorf("%w: missing custom claims", domain.ErrUnauthorized)
	}
	return &domain.Session{
		Token:   token,
		Subject: claims.RegisteredClaims.Subject,
		UserID:  custom.UserID,
		Role:    custom.Role,
		Name:    custom.Name,
	}, nil
}

// Authenticate returns an Echo middleware that validates session tokens
func (a *SessionAuth) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
				return unauthorizedError(c, "invalid authorization header format")
			}

			session, err := a.ValidateToken(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				log.Debug().Err(err).Str("path", c.Request().URL.Path).Msg("Token validation failed")
				return unauthorizedError(c, "invalid or expired session")
			}

			ctx := context.WithValue(c.Request().Context(), SessionKey, session)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireRole rejects sessions that do not carry role
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := GetSession(c)
			if session == nil {
				return unauthorizedError(c, "authentication required")
			}
			if session.Role != role {
				log.Debug().Str("subject", session.Subject).Str("role", string(session.Role)).Str("required", string(role)).Msg("Role check failed")
				return forbiddenError(c, fmt.Sprintf("%s role required", strings.ToLower(string(role))))
			}
			return next(c)
		}
	}
}

// GetSession extracts the caller's session from the context
func GetSession(c echo.Context) *domain.Session {
	if s, ok := c.Request().Context().Value(SessionKey).(*domain.Session); ok {
		return s
	}
	return nil
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
