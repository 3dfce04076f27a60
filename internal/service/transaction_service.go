package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	budgetService   *BudgetService
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, budgetService *BudgetService) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetService:   budgetService,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *TransactionService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// TransactionInput holds the input for creating or updating a transaction
type TransactionInput struct {
	Amount      decimal.Decimal
	Kind        domain.TransactionKind
	CategoryID  *int32
	Date        time.Time
	Description *string
}

func (s *TransactionService) validateInput(ownerID uuid.UUID, input *TransactionInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if !input.Kind.Valid() {
		return domain.ErrInvalidKind
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			input.Description = nil
		} else {
			if len(trimmed) > domain.MaxDescriptionLength {
				return domain.ErrDescriptionTooLong
			}
			input.Description = &trimmed
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ownerID, *input.CategoryID); err != nil {
			return domain.ErrCategoryNotFound
		}
	}
	return nil
}

// CreateTransaction creates a new transaction with validation
func (s *TransactionService) CreateTransaction(ownerID uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	if err := s.validateInput(ownerID, &input); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		OwnerID:     ownerID,
		Amount:      input.Amount,
		Kind:        input.Kind,
		CategoryID:  input.CategoryID,
		Date:        truncateToDay(input.Date),
		Description: input.Description,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.TransactionCreated(created))
	s.checkBudgetAlert(ownerID, created)

	return created, nil
}

// UpdateTransaction replaces a transaction's fields. The row must be
// owned by the caller; otherwise the result is ErrTransactionNotFound,
// the same as for a row that does not exist.
func (s *TransactionService) UpdateTransaction(ownerID uuid.UUID, id int32, input TransactionInput) (*domain.Transaction, error) {
	if err := s.validateInput(ownerID, &input); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		ID:          id,
		OwnerID:     ownerID,
		Amount:      input.Amount,
		Kind:        input.Kind,
		CategoryID:  input.CategoryID,
		Date:        truncateToDay(input.Date),
		Description: input.Description,
	}

	updated, err := s.transactionRepo.Update(transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.TransactionUpdated(updated))
	s.checkBudgetAlert(ownerID, updated)

	return updated, nil
}

// DeleteTransaction removes an owned transaction
func (s *TransactionService) DeleteTransaction(ownerID uuid.UUID, id int32) error {
	if err := s.transactionRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.publishEvent(ownerID, websocket.TransactionDeleted(map[string]int32{"id": id}))
	return nil
}

// GetTransaction retrieves a single owned transaction
func (s *TransactionService) GetTransaction(ownerID uuid.UUID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ownerID, id)
}

// GetTransactions retrieves the owner's transactions with optional filters and pagination
func (s *TransactionService) GetTransactions(ownerID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}
	if filters.Period != nil {
		if err := filters.Period.Validate(); err != nil {
			return nil, err
		}
	}
	if filters.PageSize <= 0 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return s.transactionRepo.GetByOwner(ownerID, filters)
}

// checkBudgetAlert re-evaluates the budget covering the transaction's
// category and period after an expense write, pushing a budget.alert
// event when the threshold is reached. Alerting is best-effort: an
// evaluation failure is logged, never surfaced to the writer.
func (s *TransactionService) checkBudgetAlert(ownerID uuid.UUID, tx *domain.Transaction) {
	if s.budgetService == nil || tx.Kind != domain.TransactionKindExpense || tx.CategoryID == nil {
		return
	}

	period := domain.CurrentPeriod(tx.Date)
	status, err := s.budgetService.EvaluateCategory(ownerID, *tx.CategoryID, period)
	if err != nil {
		log.Warn().Err(err).
			Str("owner_id", ownerID.String()).
			Int32("category_id", *tx.CategoryID).
			Msg("Budget alert evaluation failed")
		return
	}
	if status != nil && status.OverThreshold() {
		s.publishEvent(ownerID, websocket.BudgetAlert(status))
	}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
