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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create or update transaction request body
type TransactionRequest struct {
	Amount      string  `json:"amount"`
	Kind        string  `json:"kind"`
	CategoryID  *int32  `json:"categoryId,omitempty"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32   `json:"id"`
	Amount      string  `json:"amount"`
	Kind        string  `json:"kind"`
	CategoryID  *int32  `json:"categoryId,omitempty"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// PaginatedTransactionsResponse represents paginated transactions in API responses
type PaginatedTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int32                 `json:"page"`
	PageSize   int32                 `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int32                 `json:"totalPages"`
}

func (h *TransactionHandler) parseInput(c echo.Context, req *TransactionRequest) (service.TransactionInput, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.TransactionInput{}, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date := time.Now().UTC()
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return service.TransactionInput{}, NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		date = parsed
	}

	return service.TransactionInput{
		Amount:      amount,
		Kind:        domain.TransactionKind(req.Kind),
		CategoryID:  req.CategoryID,
		Date:        date,
		Description: req.Description,
	}, nil
}

func serviceErrorResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrInvalidKind):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "kind", Message: "Kind must be one of: income, expense"},
		}), true
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		}), true
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found"), true
	}
	return nil, false
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, parseErr := h.parseInput(c, &req)
	if parseErr != nil {
		return parseErr
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		if resp, handled := serviceErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Str("kind", string(transaction.Kind)).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters := &domain.TransactionFilters{
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	monthStr := c.QueryParam("month")
	yearStr := c.QueryParam("year")
	if monthStr != "" || yearStr != "" {
		period, verrs := parsePeriod(c)
		if verrs != nil {
			return NewValidationError(c, "Invalid period", verrs)
		}
		filters.Period = &period
	}

	if kindStr := c.QueryParam("kind"); kindStr != "" {
		kind := domain.TransactionKind(kindStr)
		if !kind.Valid() {
			return NewValidationError(c, "Invalid kind (must be 'income' or 'expense')", nil)
		}
		filters.Kind = &kind
	}

	if categoryIDStr := c.QueryParam("categoryId"); categoryIDStr != "" {
		v, err := strconv.ParseInt(categoryIDStr, 10, 32)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId", nil)
		}
		categoryID := int32(v)
		filters.CategoryID = &categoryID
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		v, err := strconv.ParseInt(pageStr, 10, 32)
		if err != nil || v < 1 {
			return NewValidationError(c, "Invalid page (must be positive integer)", nil)
		}
		filters.Page = int32(v)
	}

	if pageSizeStr := c.QueryParam("pageSize"); pageSizeStr != "" {
		v, err := strconv.ParseInt(pageSizeStr, 10, 32)
		if err != nil || v < 1 {
			return NewValidationError(c, "Invalid pageSize (must be positive integer)", nil)
		}
		filters.PageSize = int32(v)
	}

	result, err := h.transactionService.GetTransactions(userID, filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	response := PaginatedTransactionsResponse{
		Data:       make([]TransactionResponse, len(result.Data)),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	}
	for i, transaction := range result.Data {
		response.Data[i] = toTransactionResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	transaction, err := h.transactionService.GetTransaction(userID, int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, parseErr := h.parseInput(c, &req)
	if parseErr != nil {
		return parseErr
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, int32(id), input)
	if err != nil {
		if resp, handled := serviceErrorResponse(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Str("user_id", userID.String()).Int32("transaction_id", transaction.ID).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, int32(id)); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Str("user_id", userID.String()).Int("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		Amount:      transaction.Amount.StringFixed(2),
		Kind:        string(transaction.Kind),
		CategoryID:  transaction.CategoryID,
		Date:        transaction.Date.Format("2006-01-02"),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
	}
}
