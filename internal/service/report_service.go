package service

import (
	"github.com/google/uuid"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// ReportService is the aggregation engine: it reads one snapshot of an
// owner's ledger for a period and derives summary, breakdown, and trend
// views from it. All three operations are read-only and deterministic
// for a given snapshot.
type ReportService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Summary computes income and expense totals for the owner's period.
// A period with no transactions yields an all-zero summary.
func (s *ReportService) Summary(ownerID uuid.UUID, period domain.Period) (domain.Summary, error) {
	if err := period.Validate(); err != nil {
		return domain.Summary{}, err
	}

	transactions, err := s.transactionRepo.GetByPeriod(ownerID, period)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(transactions), nil
}

// CategoryBreakdown computes expense totals grouped by category name,
// sorted by total descending with ties broken by name ascending.
func (s *ReportService) CategoryBreakdown(ownerID uuid.UUID, period domain.Period) ([]domain.CategoryTotal, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByPeriod(ownerID, period)
	if err != nil {
		return nil, err
	}

	nameByID, err := s.categoryNames(ownerID)
	if err != nil {
		return nil, err
	}

	return domain.ExpenseBreakdown(transactions, nameByID), nil
}

// TimeSeries computes the owner's daily expense totals for the period,
// ascending by date. Days without expenses are omitted.
func (s *ReportService) TimeSeries(ownerID uuid.UUID, period domain.Period) ([]domain.SeriesPoint, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByPeriod(ownerID, period)
	if err != nil {
		return nil, err
	}

	return domain.ExpenseSeries(transactions), nil
}

func (s *ReportService) categoryNames(ownerID uuid.UUID) (map[int32]string, error) {
	categories, err := s.categoryRepo.GetVisible(ownerID)
	if err != nil {
		return nil, err
	}

	nameByID := make(map[int32]string, len(categories))
	for _, category := range categories {
		nameByID[category.ID] = category.Name
	}
	return nameByID, nil
}
