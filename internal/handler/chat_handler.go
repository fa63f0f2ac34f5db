package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
)

// ChatHandler handles support chat requests
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest represents a chat message body
type SendMessageRequest struct {
	Message string `json:"message"`
}

// GetMyMessages godoc
// @Summary My conversation with support
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ChatMessage
// @Router /chat/customer/messages [get]
func (h *ChatHandler) GetMyMessages(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	msgs, err := h.chatService.CustomerMessages(c.Request().Context(), *session, session.UserID)
	if err != nil {
		return respondError(c, err, "Failed to get messages")
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendCustomerMessage godoc
// @Summary Message support
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} domain.ChatMessage
// @Failure 400 {object} ProblemDetails
// @Router /chat/customer/messages [post]
func (h *ChatHandler) SendCustomerMessage(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	msg, err := h.chatService.SendAsCustomer(c.Request().Context(), *session, req.Message)
	if err != nil {
		return respondError(c, err, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, msg)
}

// GetAllChats godoc
// @Summary Every customer conversation
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.ChatMessage
// @Failure 403 {object} ProblemDetails
// @Router /chat/admin/chats [get]
func (h *ChatHandler) GetAllChats(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	msgs, err := h.chatService.AllChats(c.Request().Context(), *session)
	if err != nil {
		return respondError(c, err, "Failed to get chats")
	}
	return c.JSON(http.StatusOK, msgs)
}

// GetCustomerMessages godoc
// @Summary One customer's conversation
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param customerId path int true "Customer ID"
// @Success 200 {array} domain.ChatMessage
// @Router /chat/admin/customers/{customerId}/messages [get]
func (h *ChatHandler) GetCustomerMessages(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	customerID, ok := parseID(c, "customerId")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	msgs, err := h.chatService.CustomerMessages(c.Request().Context(), *session, customerID)
	if err != nil {
		return respondError(c, err, "Failed to get messages")
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendAdminMessage godoc
// @Summary Reply to a customer
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customerId path int true "Customer ID"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} domain.ChatMessage
// @Failure 400 {object} ProblemDetails
// @Router /chat/admin/customers/{customerId}/messages [post]
func (h *ChatHandler) SendAdminMessage(c echo.Context) error {
	session := sessionOf(c)
	if session == nil {
		return NewUnauthorizedError(c, "Session required")
	}

	customerID, ok := parseID(c, "customerId")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	msg, err := h.chatService.SendAsAdmin(c.Request().Context(), *session, customerID, req.Message)
	if err != nil {
		return respondError(c, err, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, msg)
}
