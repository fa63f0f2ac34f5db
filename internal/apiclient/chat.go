package apiclient

import (
	"context"
	"net/http"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
)

// GetCustomerMessages returns one customer's conversation
func (c *Client) GetCustomerMessages(ctx context.Context, session domain.Session, customerID int64) ([]domain.ChatMessage, error) {
	var raw []rawChatMessage
	if err := c.do(ctx, "chat_customer", session, http.MethodGet, "/chat/customer/"+itoa(customerID), nil, &raw); err != nil {
		return nil, err
	}
	return chatToDomain(raw), nil
}

// GetAllChats returns every conversation, for administrators
func (c *Client) GetAllChats(ctx context.Context, session domain.Session) ([]domain.ChatMessage, error) {
	var raw []rawChatMessage
	if err := c.do(ctx, "chat_all", session, http.MethodGet, "/chat/admin/all", nil, &raw); err != nil {
		return nil, err
	}
	return chatToDomain(raw), nil
}

// SendCustomerMessage posts a message as the session customer
func (c *Client) SendCustomerMessage(ctx context.Context, session domain.Session, message string) (*domain.ChatMessage, error) {
	body := map[string]string{"message": message}
	var raw rawChatMessage
	if err := c.do(ctx, "chat_customer_send", session, http.MethodPost, "/chat/customer/send", body, &raw); err != nil {
		return nil, err
	}
	msg := raw.toDomain()
	return &msg, nil
}

// SendAdminMessage posts a reply to customerID as the session administrator
func (c *Client) SendAdminMessage(ctx context.Context, session domain.Session, customerID int64, message string) (*domain.ChatMessage, error) {
	body := struct {
		CustomerID int64  `json:"customerId"`
		Message    string `json:"message"`
	}{customerID, message}
	var raw rawChatMessage
	if err := c.do(ctx, "chat_admin_send", session, http.MethodPost, "/chat/admin/send", body, &raw); err != nil {
		return nil, err
	}
	msg := raw.toDomain()
	return &msg, nil
}
