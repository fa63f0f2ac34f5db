package handler

import (
	"context"
	"net/http"
	"slices"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// SessionValidator turns a raw session token into a session
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
}

// originPolicy decides which browser origins may open a push connection.
// A "*" entry admits every origin.
type originPolicy []string

func (p originPolicy) allows(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(p, "*") || slices.Contains(p, origin) {
		return true
	}
	log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
	return false
}

// WebSocketHandler upgrades authenticated sessions onto the push hub
type WebSocketHandler struct {
	hub       *websocket.Hub
	validator SessionValidator
	upgrader  ws.Upgrader
	timings   websocket.Timings
}

// NewWebSocketHandler creates a WebSocketHandler admitting allowedOrigins
func NewWebSocketHandler(hub *websocket.Hub, validator SessionValidator, allowedOrigins []string) *WebSocketHandler {
	policy := originPolicy(slices.Clone(allowedOrigins))
	return &WebSocketHandler{
		hub:       hub,
		validator: validator,
		timings:   websocket.DefaultTimings(),
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.allows,
		},
	}
}

// channelFor picks the push channel a session listens on
func channelFor(session *domain.Session) string {
	if session.IsAdmin() {
		return websocket.AdminChannel
	}
	return websocket.CustomerChannel(session.UserID)
}

// authenticate resolves the ?token= query parameter. Browsers cannot set
// headers on the upgrade request.
func (h *WebSocketHandler) authenticate(c echo.Context) (*domain.Session, error) {
	token := c.QueryParam("token")
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	session, err := h.validator.ValidateToken(c.Request().Context(), token)
	if err != nil {
		log.Debug().Err(err).Str("remote", c.RealIP()).Msg("WebSocket token rejected")
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return session, nil
}

// HandleWS serves GET /ws. The connection joins the admin channel or the
// caller's customer channel and is greeted with a session.ready event.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	session, err := h.authenticate(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		log.Warn().Err(err).Str("subject", session.Subject).Msg("WebSocket upgrade failed")
		return nil
	}

	channel := channelFor(session)
	client := websocket.NewClient(conn, channel, h.hub,
		websocket.WithSubject(session.Subject),
		websocket.WithTimings(h.timings),
	)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	if err := client.SendEvent(websocket.Ready(channel)); err != nil {
		log.Warn().Err(err).Str("client_id", client.ID()).Msg("Failed to greet WebSocket client")
	}
	log.Info().Str("subject", session.Subject).Str("channel", channel).Str("client_id", client.ID()).Msg("WebSocket client connected")
	return nil
}
