package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Shared    bool   `json:"shared"`
	CreatedAt string `json:"createdAt"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required and must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrDuplicateCategory) {
			return NewConflictError(c, "A category with this name already exists")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("user_id", userID.String()).Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.GetCategories(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}

	return c.JSON(http.StatusOK, response)
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Shared:    category.Owner.IsShared(),
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}
