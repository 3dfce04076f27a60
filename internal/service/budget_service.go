package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
)

// BudgetService combines budget definitions with the aggregation
// engine's category breakdown to evaluate spend status, and owns the
// single stateful operation of the core: the budget upsert.
type BudgetService struct {
	budgetRepo     domain.BudgetRepository
	categoryRepo   domain.CategoryRepository
	reportService  *ReportService
	alertThreshold decimal.Decimal
	eventPublisher websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService with the given alert
// threshold (percentage used at which statuses carry an alert)
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, reportService *ReportService, alertThreshold decimal.Decimal) *BudgetService {
	return &BudgetService{
		budgetRepo:     budgetRepo,
		categoryRepo:   categoryRepo,
		reportService:  reportService,
		alertThreshold: alertThreshold,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BudgetService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// GetBudgets returns the owner's budget rows for the period
func (s *BudgetService) GetBudgets(ownerID uuid.UUID, period domain.Period) ([]*domain.BudgetWithCategory, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByPeriod(ownerID, period)
}

// Status evaluates every budget the owner has for the period against
// actual spending, sorted by percentage used descending. Budgets whose
// category row is missing are logged and excluded rather than failing
// the whole evaluation.
func (s *BudgetService) Status(ownerID uuid.UUID, period domain.Period) ([]domain.BudgetStatus, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.GetByPeriod(ownerID, period)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.reportService.CategoryBreakdown(ownerID, period)
	if err != nil {
		return nil, err
	}

	statuses, skipped, err := domain.EvaluateBudgets(budgets, breakdown, s.alertThreshold)
	if err != nil {
		return nil, err
	}
	for _, b := range skipped {
		log.Warn().
			Str("owner_id", ownerID.String()).
			Int32("budget_id", b.ID).
			Int32("category_id", b.CategoryID).
			Msg("Budget references a missing category, excluded from status")
	}

	return statuses, nil
}

// SetBudget atomically creates or replaces the budget for
// (owner, category, period). Two concurrent calls for the same key
// leave exactly one row; the second writer's limit wins. All
// validation happens before any write.
func (s *BudgetService) SetBudget(ownerID uuid.UUID, categoryID int32, period domain.Period, limit decimal.Decimal) (*domain.Budget, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidLimit
	}

	// The category must exist and be visible to the owner
	if _, err := s.categoryRepo.GetByID(ownerID, categoryID); err != nil {
		return nil, err
	}

	budget := &domain.Budget{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Limit:      limit,
		Month:      period.Month,
		Year:       period.Year,
	}
	written, err := s.budgetRepo.Upsert(budget)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.BudgetUpdated(written))
	return written, nil
}

// DeleteBudget removes an owned budget. A budget owned by someone else
// is reported as not found, the same as a missing row.
func (s *BudgetService) DeleteBudget(ownerID uuid.UUID, id int32) error {
	return s.budgetRepo.Delete(ownerID, id)
}

// EvaluateCategory computes the status of the single budget covering
// (category, period), used for alert checks after an expense write.
// Returns nil when no budget covers the category.
func (s *BudgetService) EvaluateCategory(ownerID uuid.UUID, categoryID int32, period domain.Period) (*domain.BudgetStatus, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.GetByCategory(ownerID, categoryID, period)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return nil, nil
		}
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.reportService.CategoryBreakdown(ownerID, period)
	if err != nil {
		return nil, err
	}

	row := &domain.BudgetWithCategory{Budget: *budget, CategoryName: category.Name}
	statuses, _, err := domain.EvaluateBudgets([]*domain.BudgetWithCategory{row}, breakdown, s.alertThreshold)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	return &statuses[0], nil
}
