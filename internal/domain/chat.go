package domain

import (
	"context"
	"errors"
)

var (
	ErrChatMessageEmpty   = errors.New("message cannot be empty")
	ErrChatMessageTooLong = errors.New("message cannot exceed 2000 characters")
)

// SenderType identifies which side of a conversation wrote a message
type SenderType string

const (
	SenderCustomer SenderType = "CUSTOMER"
	SenderAdmin    SenderType = "ADMIN"
)

// ChatMessage is a single support chat message
type ChatMessage struct {
	ID           int64      `json:"id"`
	CustomerID   int64      `json:"customerId"`
	CustomerName string     `json:"customerName,omitempty"`
	AdminID      *int64     `json:"adminId,omitempty"`
	AdminName    string     `json:"adminName,omitempty"`
	SenderType   SenderType `json:"senderType"`
	Message      string     `json:"message"`
	SentAt       string     `json:"sentAt,omitempty"`
}

// ChatGateway is the chat side of the external loan service
type ChatGateway interface {
	GetCustomerMessages(ctx context.Context, session Session, customerID int64) ([]ChatMessage, error)
	GetAllChats(ctx context.Context, session Session) ([]ChatMessage, error)
	SendCustomerMessage(ctx context.Context, session Session, message string) (*ChatMessage, error)
	SendAdminMessage(ctx context.Context, session Session, customerID int64, message string) (*ChatMessage, error)
}
