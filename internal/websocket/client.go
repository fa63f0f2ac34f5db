package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
)

// ErrSlowClient is returned when a client's send buffer is full. The client
// is closed; the browser reconnects and refetches.
var ErrSlowClient = errors.New("client send buffer full")

// Timings bounds one connection's pumps
type Timings struct {
	WriteWait      time.Duration // per frame write deadline
	PongWait       time.Duration // how long the peer may stay silent
	PingPeriod     time.Duration // must be below PongWait
	MaxMessageSize int64         // largest inbound frame
	SendBuffer     int           // queued outbound frames before eviction
}

// DefaultTimings suits browsers behind ordinary proxies
func DefaultTimings() Timings {
	return Timings{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 512,
		SendBuffer:     64,
	}
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithSubject tags the connection with the session subject for logging
func WithSubject(subject string) ClientOption {
	return func(c *Client) {
		c.subject = subject
	}
}

// WithTimings overrides DefaultTimings
func WithTimings(t Timings) ClientOption {
	return func(c *Client) {
		c.timings = t
	}
}

// Client is one browser connection on a single channel. Frames flow one
// way except for the small control vocabulary handled in ReadPump.
type Client struct {
	id        string
	channel   string
	subject   string
	conn      *websocket.Conn
	hub       *Hub
	timings   Timings
	send      chan []byte
	closed    bool
	mu        sync.RWMutex
	closeOnce sync.Once
}

// NewClient creates a client for conn subscribed to channel
func NewClient(conn *websocket.Conn, channel string, hub *Hub, opts ...ClientOption) *Client {
	c := &Client{
		id:      uuid.NewString(),
		channel: channel,
		conn:    conn,
		hub:     hub,
		timings: DefaultTimings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timings.SendBuffer <= 0 {
		c.timings.SendBuffer = DefaultTimings().SendBuffer
	}
	c.send = make(chan []byte, c.timings.SendBuffer)
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Channel() string {
	return c.channel
}

func (c *Client) logger() zerolog.Logger {
	return log.With().
		Str("client_id", c.id).
		Str("channel", c.channel).
		Str("subject", c.subject).
		Logger()
}

// Send queues data for the write pump. A client that cannot keep up is
// closed instead of blocking the hub.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrClientClosed
	}
	select {
	case c.send <- data:
		c.mu.RUnlock()
		return nil
	default:
	}
	c.mu.RUnlock()

	metrics.WebSocketSlowClientsTotal.Inc()
	l := c.logger()
	l.Warn().Int("buffer", c.timings.SendBuffer).Msg("Evicting slow WebSocket client")
	if c.hub != nil {
		c.hub.Unregister(c)
	}
	_ = c.Close()
	return ErrSlowClient
}

// SendEvent serialises and queues event
func (c *Client) SendEvent(event Event) error {
	data, err := event.ToJSON()
	if err != nil {
		return err
	}
	return c.Send(data)
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		if c.conn != nil {
			closeErr = c.conn.Close()
		}
	})
	return closeErr
}

func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// controlFrame is the only inbound message shape: {"action": "ping"}
type controlFrame struct {
	Action string `json:"action"`
}

// ReadPump consumes inbound frames until the peer goes away, answering
// control actions. Run it in its own goroutine.
func (c *Client) ReadPump() {
	l := c.logger()
	defer func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}
		_ = c.Close()
	}()

	c.conn.SetReadLimit(c.timings.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.timings.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.timings.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l.Warn().Err(err).Msg("WebSocket unexpected close")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timings.PongWait))

		var frame controlFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			l.Debug().Msg("Ignoring non-JSON WebSocket frame")
			continue
		}
		switch frame.Action {
		case "ping":
			if err := c.SendEvent(Pong(c.channel)); err != nil {
				return
			}
		default:
			l.Debug().Str("action", frame.Action).Msg("Ignoring unknown WebSocket action")
		}
	}
}

// WritePump writes queued frames and keeps the connection alive with
// pings. Run it in its own goroutine.
func (c *Client) WritePump() {
	l := c.logger()
	ticker := time.NewTicker(c.timings.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.timings.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				l.Warn().Err(err).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.timings.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
