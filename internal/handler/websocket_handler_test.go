package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// mockSessionValidator is a test double for session validation
type mockSessionValidator struct {
	session *domain.Session
	err     error
}

func (m *mockSessionValidator) ValidateToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := *m.session
	s.Token = token
	return &s, nil
}

var testAllowedOrigins = []string{"http://localhost:3000", "https://portal.smartlend.app"}

func TestWebSocketHandler_HandleWS_MissingToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &mockSessionValidator{session: &customerSession}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.HandleWS(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestWebSocketHandler_HandleWS_InvalidToken(t *testing.T) {
	e := echo.New()
	h := NewWebSocketHandler(websocket.NewHub(), &mockSessionValidator{err: domain.ErrUnauthorized}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=invalid-jwt", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.HandleWS(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestWebSocketHandler_HandleWS_ValidToken_NoUpgrade(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, &mockSessionValidator{session: &customerSession}, testAllowedOrigins)

	req := httptest.NewRequest(http.MethodGet, "/ws?token=valid-jwt", nil)
	rec := httptest.NewRecorder()

	// auth passes, the upgrader answers the plain request itself
	require.NoError(t, h.HandleWS(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.TotalClientCount())
}

func TestOriginPolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   originPolicy
		origin   string
		expected bool
	}{
		{"allowed origin", testAllowedOrigins, "http://localhost:3000", true},
		{"allowed origin https", testAllowedOrigins, "https://portal.smartlend.app", true},
		{"disallowed origin", testAllowedOrigins, "https://evil.com", false},
		{"no origin header", testAllowedOrigins, "", true},
		{"wildcard", originPolicy{"*"}, "https://anything.example", true},
		{"empty policy", nil, "http://localhost:3000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.expected, tt.policy.allows(req))
		})
	}
}

func TestChannelFor(t *testing.T) {
	assert.Equal(t, websocket.AdminChannel, channelFor(&adminSession))
	assert.Equal(t, websocket.CustomerChannel(7), channelFor(&customerSession))
}

func TestWebSocketHandler_DeliversChannelEvents(t *testing.T) {
	hub := websocket.NewHub()
	h := NewWebSocketHandler(hub, &mockSessionValidator{session: &customerSession}, testAllowedOrigins)

	e := echo.New()
	e.GET("/ws", h.HandleWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=abc"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	channel := websocket.CustomerChannel(7)
	require.Eventually(t, func() bool { return hub.ClientCount(channel) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	ready := readEvent(t, conn)
	assert.Equal(t, "session.ready", ready["type"])
	assert.Equal(t, channel, ready["payload"].(map[string]any)["channel"])

	hub.Publish(channel, websocket.EmiPaid(map[string]int64{"emiId": 101}))
	event := readEvent(t, conn)
	assert.Equal(t, "emi.paid", event["type"])
	assert.Equal(t, "emi", event["entity"])

	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(`{"action":"ping"}`)))
	assert.Equal(t, "session.pong", readEvent(t, conn)["type"])
}

func readEvent(t *testing.T, conn *ws.Conn) map[string]any {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}
