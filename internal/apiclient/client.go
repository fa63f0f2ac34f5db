// Package apiclient talks to the external SmartLend loan service and
// normalises its responses into the portal's canonical domain types.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 4 << 20
	maxErrorSnippet = 300
)

// Client is an HTTP client for the loan service. It forwards each caller's
// bearer token and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

var (
	_ domain.LoanGateway      = (*Client)(nil)
	_ domain.AdminLoanGateway = (*Client)(nil)
	_ domain.ChatGateway      = (*Client)(nil)
)

// New creates a Client rooted at baseURL, e.g. http://localhost:8080/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpstreamError carries the status and message of a rejected call. It
// unwraps to the matching domain sentinel.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Message    string
	kind       error
}

// NewUpstreamError builds the error for a call answered with status. A zero
// status means the loan service was not reached at all.
func NewUpstreamError(operation string, status int, message string) *UpstreamError {
	return &UpstreamError{Operation: operation, StatusCode: status, Message: message, kind: kindForStatus(status)}
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d", e.Operation, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.kind
}

// kindForStatus maps an upstream HTTP status onto the domain error taxonomy
func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return domain.ErrUpstreamRejected
	}
	return domain.ErrUpstreamUnavailable
}

// upstreamMessage extracts a human readable message from an error body.
// The loan service answers with plain text or {"message": ...}/{"error": ...}.
func upstreamMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	if body[0] == '{' {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			if msg := firstString(payload.Message, payload.Detail, payload.Error); msg != "" {
				return msg
			}
		}
	}
	msg := string(body)
	if len(msg) > maxErrorSnippet {
		msg = msg[:maxErrorSnippet]
	}
	return msg
}

// do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, op string, session domain.Session, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(op, 0, time.Since(start))
		log.Warn().Err(err).Str("operation", op).Str("path", path).Msg("Loan service request failed")
		return &UpstreamError{Operation: op, Message: transportMessage(ctx, err), kind: domain.ErrUpstreamUnavailable}
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(op, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: "read response", kind: domain.ErrUpstreamUnavailable}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := &UpstreamError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(data),
			kind:       kindForStatus(resp.StatusCode),
		}
		log.Debug().Str("operation", op).Int("status", resp.StatusCode).Str("message", upErr.Message).Msg("Loan service rejected request")
		return upErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: "malformed response", kind: domain.ErrUpstreamUnavailable}
	}
	return nil
}

func transportMessage(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.Canceled) {
		return "request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "request timed out"
	}
	return "loan service unreachable"
}
