package websocket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeUpdated       EventType = "updated"
	EventTypeDeleted       EventType = "deleted"
	EventTypePaid          EventType = "paid"
	EventTypeMessage       EventType = "message"
	EventTypeStatusChanged EventType = "status_changed"
	EventTypeReady         EventType = "ready"
	EventTypePong          EventType = "pong"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeEmi      EntityType = "emi"
	EntityTypeLoan     EntityType = "loan"
	EntityTypeLoanType EntityType = "loan_type"
	EntityTypeChat     EntityType = "chat"
	EntityTypeSession  EntityType = "session"
)

// AdminChannel is the channel every administrator connection joins
const AdminChannel = "admins"

// CustomerChannel is the channel of one customer's connections
func CustomerChannel(customerID int64) string {
	return "customer:" + strconv.FormatInt(customerID, 10)
}

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string     `json:"type"`      // Combined type e.g. "emi.paid"
	Entity    EntityType `json:"entity"`    // Entity type e.g. "emi"
	Payload   any        `json:"payload"`   // Full entity data
	Timestamp time.Time  `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EmiPaid creates an emi.paid event
func EmiPaid(payload any) Event {
	return NewEvent(EventTypePaid, EntityTypeEmi, payload)
}

// LoanStatusChanged creates a loan.status_changed event
func LoanStatusChanged(payload any) Event {
	return NewEvent(EventTypeStatusChanged, EntityTypeLoan, payload)
}

// LoanDeleted creates a loan.deleted event
func LoanDeleted(payload any) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLoan, payload)
}

// LoanTypeUpdated creates a loan_type.updated event
func LoanTypeUpdated(payload any) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLoanType, payload)
}

// ChatMessage creates a chat.message event
func ChatMessage(payload any) Event {
	return NewEvent(EventTypeMessage, EntityTypeChat, payload)
}

// Ready creates the session.ready greeting sent on connect. Clients refetch
// their views when they receive it, since events sent while they were
// disconnected are lost.
func Ready(channel string) Event {
	return NewEvent(EventTypeReady, EntityTypeSession, map[string]string{"channel": channel})
}

// Pong creates the session.pong reply to a ping action
func Pong(channel string) Event {
	return NewEvent(EventTypePong, EntityTypeSession, map[string]string{"channel": channel})
}
