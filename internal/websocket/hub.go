package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface is a connection the hub can deliver to. Send must not
// block.
type ClientInterface interface {
	ID() string
	Channel() string
	Send(data []byte) error
	Close() error
}

// Hub fans events out to the connections of a channel. A customer's
// connections share CustomerChannel(id); administrators share AdminChannel.
type Hub struct {
	channels map[string]map[string]ClientInterface
	mu       sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client under its channel
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel, id := client.Channel(), client.ID()
	clients := h.channels[channel]
	if clients == nil {
		clients = make(map[string]ClientInterface)
		h.channels[channel] = clients
	}
	if _, exists := clients[id]; !exists {
		metrics.ActiveWebSocketClients.Inc()
	}
	clients[id] = client

	log.Debug().Str("channel", channel).Str("client_id", id).Msg("WebSocket client registered")
}

// Unregister removes a client. Unknown clients are ignored.
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client.Channel(), client.ID())
}

func (h *Hub) removeLocked(channel, id string) bool {
	clients, ok := h.channels[channel]
	if !ok {
		return false
	}
	if _, exists := clients[id]; !exists {
		return false
	}
	delete(clients, id)
	if len(clients) == 0 {
		delete(h.channels, channel)
	}
	metrics.ActiveWebSocketClients.Dec()
	log.Debug().Str("channel", channel).Str("client_id", id).Msg("WebSocket client unregistered")
	return true
}

// snapshot copies a channel's clients so sends happen without the lock
func (h *Hub) snapshot(channel string) []ClientInterface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.channels[channel]
	out := make([]ClientInterface, 0, len(clients))
	for _, c := range clients {
		out = append(out, c)
	}
	return out
}

// Broadcast sends event to every client on channel and returns how many
// accepted it
func (h *Hub) Broadcast(channel string, event Event) int {
	clients := h.snapshot(channel)
	if len(clients) == 0 {
		return 0
	}

	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Str("event_type", event.Type).Msg("Failed to serialize event")
		return 0
	}

	delivered := 0
	for _, c := range clients {
		if err := c.Send(data); err != nil {
			log.Warn().Err(err).Str("channel", channel).Str("client_id", c.ID()).Msg("Failed to send to client")
			continue
		}
		delivered++
	}

	log.Debug().
		Str("channel", channel).
		Str("event_type", event.Type).
		Int("delivered", delivered).
		Int("client_count", len(clients)).
		Msg("Broadcast event")
	return delivered
}

// CloseAll disconnects every client, used on shutdown
func (h *Hub) CloseAll() {
	h.mu.Lock()
	var all []ClientInterface
	for channel, clients := range h.channels {
		for id, c := range clients {
			all = append(all, c)
			h.removeLocked(channel, id)
		}
	}
	h.mu.Unlock()

	for _, c := range all {
		_ = c.Close()
	}
	if len(all) > 0 {
		log.Info().Int("clients", len(all)).Msg("Closed WebSocket clients")
	}
}

// ClientCount returns the number of clients subscribed to a channel
func (h *Hub) ClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// TotalClientCount returns the number of connected clients across all channels
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.channels {
		total += len(clients)
	}
	return total
}
