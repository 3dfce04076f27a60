package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/pennywise/pennywise-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, reportHandler *ReportHandler, budgetHandler *BudgetHandler, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/category-breakdown", reportHandler.GetCategoryBreakdown)
	reports.GET("/time-series", reportHandler.GetTimeSeries)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetBudgetStatus)
	budgets.POST("", budgetHandler.SetBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)

	// WebSocket endpoint authenticates via query token, outside the
	// bearer middleware
	e.GET("/ws", wsHandler.HandleWS)
}
