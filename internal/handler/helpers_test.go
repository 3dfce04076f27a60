package handler

import (
	"context"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/testutil"
	"github.com/pennywise/pennywise-backend/internal/websocket"
)

// capturingPublisher records published events for assertions
type capturingPublisher struct {
	events []websocket.Event
}

func (p *capturingPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	p.events = append(p.events, event)
}

// handlerFixture wires mock repositories through real services into
// handlers, the same composition main performs against Postgres.
type handlerFixture struct {
	categoryRepo    *testutil.MockCategoryRepository
	transactionRepo *testutil.MockTransactionRepository
	budgetRepo      *testutil.MockBudgetRepository

	reportService      *service.ReportService
	budgetService      *service.BudgetService
	transactionService *service.TransactionService
	categoryService    *service.CategoryService

	reports      *ReportHandler
	budgets      *BudgetHandler
	transactions *TransactionHandler
	categories   *CategoryHandler
}

func newHandlerFixture() *handlerFixture {
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository(categoryRepo)

	reportService := service.NewReportService(transactionRepo, categoryRepo)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, reportService, decimal.NewFromInt(domain.DefaultAlertThreshold))
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, budgetService)
	categoryService := service.NewCategoryService(categoryRepo)

	return &handlerFixture{
		categoryRepo:       categoryRepo,
		transactionRepo:    transactionRepo,
		budgetRepo:         budgetRepo,
		reportService:      reportService,
		budgetService:      budgetService,
		transactionService: transactionService,
		categoryService:    categoryService,
		reports:            NewReportHandler(reportService),
		budgets:            NewBudgetHandler(budgetService),
		transactions:       NewTransactionHandler(transactionService),
		categories:         NewCategoryHandler(categoryService),
	}
}

// setupAuthContext injects an authenticated user into the echo context,
// mirroring what the auth middleware does after token validation.
func setupAuthContext(c echo.Context, userID uuid.UUID) {
	auth0ID := "auth0|" + userID.String()
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: &middleware.CustomClaims{Email: "test@example.com"},
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}
