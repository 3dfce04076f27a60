package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the set budget request body
type SetBudgetRequest struct {
	CategoryID int32  `json:"categoryId"`
	Limit      string `json:"limit"`
	Month      *int   `json:"month,omitempty"`
	Year       *int   `json:"year,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID           int32  `json:"id"`
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
	Limit        string `json:"limit"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// BudgetStatusResponse represents one budget status row in API responses
type BudgetStatusResponse struct {
	BudgetID       int32   `json:"budgetId"`
	CategoryID     int32   `json:"categoryId"`
	CategoryName   string  `json:"categoryName"`
	Limit          string  `json:"limit"`
	Spent          string  `json:"spent"`
	Remaining      string  `json:"remaining"`
	PercentageUsed string  `json:"percentageUsed"`
	Alert          *string `json:"alert,omitempty"`
}

// BudgetStatusListResponse wraps status rows with their period
type BudgetStatusListResponse struct {
	Month    int                    `json:"month"`
	Year     int                    `json:"year"`
	Statuses []BudgetStatusResponse `json:"statuses"`
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	period, verrs := parsePeriod(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid period", verrs)
	}

	budgets, err := h.budgetService.GetBudgets(userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(&budget.Budget, budget.CategoryName)
	}

	return c.JSON(http.StatusOK, response)
}

// GetBudgetStatus handles GET /api/v1/budgets/status
func (h *BudgetHandler) GetBudgetStatus(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	period, verrs := parsePeriod(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid period", verrs)
	}

	statuses, err := h.budgetService.Status(userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to evaluate budget status")
		return NewInternalError(c, "Failed to evaluate budget status")
	}

	rows := make([]BudgetStatusResponse, len(statuses))
	for i, status := range statuses {
		rows[i] = BudgetStatusResponse{
			BudgetID:       status.BudgetID,
			CategoryID:     status.CategoryID,
			CategoryName:   status.CategoryName,
			Limit:          status.Limit.StringFixed(2),
			Spent:          status.Spent.StringFixed(2),
			Remaining:      status.Remaining.StringFixed(2),
			PercentageUsed: status.PercentageUsed.StringFixed(1),
			Alert:          status.Alert,
		}
	}

	return c.JSON(http.StatusOK, BudgetStatusListResponse{
		Month:    period.Month,
		Year:     period.Year,
		Statuses: rows,
	})
}

// SetBudget handles POST /api/v1/budgets
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.CategoryID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category ID is required"},
		})
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		return NewValidationError(c, "Invalid limit", []ValidationError{
			{Field: "limit", Message: "Must be a valid decimal number"},
		})
	}

	// Omitted month/year default independently to the current calendar value
	period := domain.CurrentPeriod(time.Now())
	if req.Month != nil {
		period.Month = *req.Month
	}
	if req.Year != nil {
		period.Year = *req.Year
	}

	budget, err := h.budgetService.SetBudget(userID, req.CategoryID, period, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be 1-12 and year 2000 or later"},
			})
		}
		if errors.Is(err, domain.ErrInvalidLimit) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "limit", Message: "Limit must be positive"},
			})
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category not found"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", req.CategoryID).Msg("Failed to set budget")
		return NewInternalError(c, "Failed to set budget")
	}

	log.Info().Str("user_id", userID.String()).Int32("budget_id", budget.ID).Int32("category_id", budget.CategoryID).Msg("Budget set")
	return c.JSON(http.StatusOK, toBudgetResponse(budget, ""))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, int32(id)); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("user_id", userID.String()).Int("budget_id", id).Msg("Budget deleted")
	return c.NoContent(http.StatusNoContent)
}

func toBudgetResponse(budget *domain.Budget, categoryName string) BudgetResponse {
	return BudgetResponse{
		ID:           budget.ID,
		CategoryID:   budget.CategoryID,
		CategoryName: categoryName,
		Limit:        budget.Limit.StringFixed(2),
		Month:        budget.Month,
		Year:         budget.Year,
		CreatedAt:    budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    budget.UpdatedAt.Format(time.RFC3339),
	}
}
