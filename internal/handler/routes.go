package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/smartlend/smartlend/smartlend-portal/internal/domain"
	"github.com/smartlend/smartlend/smartlend-portal/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, auth *middleware.SessionAuth, limiter *middleware.RateLimiter, emiHandler *EmiHandler, documentHandler *DocumentHandler, adminLoanHandler *AdminLoanHandler, loanTypeHandler *LoanTypeHandler, chatHandler *ChatHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(auth.Authenticate())
	if limiter != nil {
		api.Use(middleware.RateLimitMiddleware(limiter))
	}

	// Customer loans, schedules and documents
	loans := api.Group("/loans", middleware.RequireRole(domain.RoleCustomer))
	loans.GET("", emiHandler.GetLoans)
	loans.GET("/:loanId/emis", emiHandler.GetSchedule)
	loans.GET("/:loanId/status-history", emiHandler.GetStatusHistory)
	loans.POST("/:loanId/emis/:emiId/pay", emiHandler.PayEmi)
	loans.GET("/:loanId/emis/:emiId/receipt", documentHandler.DownloadReceipt)
	loans.GET("/:loanId/noc", documentHandler.DownloadClosureCertificate)
	loans.GET("/:loanId/documents", documentHandler.ListDocuments)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/loans", adminLoanHandler.ListLoans)
	admin.GET("/loans/:loanId", adminLoanHandler.GetLoan)
	admin.PUT("/loans/:loanId/status", adminLoanHandler.UpdateStatus)
	admin.DELETE("/loans/:loanId", adminLoanHandler.DeleteLoan)
	admin.GET("/loan-types", loanTypeHandler.ListLoanTypes)
	admin.PUT("/loan-types/:id", loanTypeHandler.UpdateLoanType)

	// Chat
	chat := api.Group("/chat")
	customerChat := chat.Group("/customer", middleware.RequireRole(domain.RoleCustomer))
	customerChat.GET("/messages", chatHandler.GetMyMessages)
	customerChat.POST("/messages", chatHandler.SendCustomerMessage)
	adminChat := chat.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	adminChat.GET("/chats", chatHandler.GetAllChats)
	adminChat.GET("/customers/:customerId/messages", chatHandler.GetCustomerMessages)
	adminChat.POST("/customers/:customerId/messages", chatHandler.SendAdminMessage)

	// Push channel authenticates through the query token
	e.GET("/ws", wsHandler.HandleWS)
}
