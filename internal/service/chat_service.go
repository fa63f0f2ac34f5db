package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// ChatFeed delivers chat messages to connected clients. Deliver reports
// whether the message was pushed; feeds that deduplicate return false for
// messages they have already seen.
type ChatFeed interface {
	Deliver(msg domain.ChatMessage) bool
}

// publishChat pushes msg to its customer and to every administrator
func publishChat(publisher websocket.EventPublisher, msg domain.ChatMessage) {
	event := websocket.ChatMessage(msg)
	publisher.Publish(websocket.CustomerChannel(msg.CustomerID), event)
	publisher.Publish(websocket.AdminChannel, event)
	metrics.ChatMessagesPushedTotal.Inc()
}

// DirectFeed pushes every delivered message straight to the publisher.
// It is used when no poller runs.
type DirectFeed struct {
	publisher websocket.EventPublisher
}

// NewDirectFeed creates a new DirectFeed
func NewDirectFeed(publisher websocket.EventPublisher) *DirectFeed {
	return &DirectFeed{publisher: publisher}
}

// Deliver implements ChatFeed
func (f *DirectFeed) Deliver(msg domain.ChatMessage) bool {
	publishChat(f.publisher, msg)
	return true
}

// ChatService sends and reads support chat messages
type ChatService struct {
	chat domain.ChatGateway
	feed ChatFeed
}

// NewChatService creates a new ChatService. feed may be nil.
func NewChatService(chat domain.ChatGateway, feed ChatFeed) *ChatService {
	return &ChatService{chat: chat, feed: feed}
}

// ValidateMessage trims and checks a chat message
func ValidateMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrChatMessageEmpty
	}
	if utf8.RuneCountInString(message) > domain.MaxChatMessageLength {
		return "", domain.ErrChatMessageTooLong
	}
	return message, nil
}

// CustomerMessages returns a customer's conversation. Customers may only
// read their own.
func (s *ChatService) CustomerMessages(ctx context.Context, session domain.Session, customerID int64) ([]domain.ChatMessage, error) {
	if !session.IsAdmin() && customerID != session.UserID {
		return nil, domain.ErrForbidden
	}
	return s.chat.GetCustomerMessages(ctx, session, customerID)
}

// AllChats returns every conversation
func (s *ChatService) AllChats(ctx context.Context, session domain.Session) ([]domain.ChatMessage, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.chat.GetAllChats(ctx, session)
}

// SendAsCustomer posts a message from the session customer
func (s *ChatService) SendAsCustomer(ctx context.Context, session domain.Session, message string) (*domain.ChatMessage, error) {
	message, err := ValidateMessage(message)
	if err != nil {
		return nil, err
	}
	msg, err := s.chat.SendCustomerMessage(ctx, session, message)
	if err != nil {
		return nil, err
	}
	if msg.CustomerID == 0 {
		msg.CustomerID = session.UserID
	}
	s.deliver(*msg)
	return msg, nil
}

// SendAsAdmin posts a reply to customerID from the session administrator
func (s *ChatService) SendAsAdmin(ctx context.Context, session domain.Session, customerID int64, message string) (*domain.ChatMessage, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if customerID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	message, err := ValidateMessage(message)
	if err != nil {
		return nil, err
	}
	msg, err := s.chat.SendAdminMessage(ctx, session, customerID, message)
	if err != nil {
		return nil, err
	}
	if msg.CustomerID == 0 {
		msg.CustomerID = customerID
	}
	s.deliver(*msg)
	return msg, nil
}

func (s *ChatService) deliver(msg domain.ChatMessage) {
	if s.feed == nil {
		return
	}
	if s.feed.Deliver(msg) {
		log.Debug().Int64("message_id", msg.ID).Int64("customer_id", msg.CustomerID).Msg("Chat message pushed")
	}
}
