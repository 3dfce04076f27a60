package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one period. The natural
// key is (OwnerID, CategoryID, Month, Year); a new submission for an
// existing key replaces the limit.
type Budget struct {
	ID         int32           `json:"id"`
	OwnerID    uuid.UUID       `json:"ownerId"`
	CategoryID int32           `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Period returns the budget's period
func (b *Budget) Period() Period {
	return Period{Month: b.Month, Year: b.Year}
}

// BudgetWithCategory is a budget row joined with its category name, the
// shape the evaluator consumes. CategoryName is empty when the category
// row is missing (an integrity anomaly the evaluator skips).
type BudgetWithCategory struct {
	Budget
	CategoryName string `json:"categoryName"`
}

type BudgetRepository interface {
	// Upsert atomically creates or replaces the budget for its natural
	// key and returns the post-write row. Last write wins.
	Upsert(budget *Budget) (*Budget, error)
	GetByPeriod(ownerID uuid.UUID, period Period) ([]*BudgetWithCategory, error)
	GetByCategory(ownerID uuid.UUID, categoryID int32, period Period) (*Budget, error)
	Delete(ownerID uuid.UUID, id int32) error
}
