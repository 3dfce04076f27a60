package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert creates or replaces the budget for its natural key
// (owner_id, category_id, month, year) in a single atomic statement.
// Concurrent writers for the same key cannot produce two rows; the
// last writer's limit wins.
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	limit, err := decimalToPgNumeric(budget.Limit)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO budgets (owner_id, category_id, amount, month, year)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (owner_id, category_id, month, year)
		 DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		 RETURNING id, owner_id, category_id, amount, month, year, created_at, updated_at`,
		budget.OwnerID, budget.CategoryID, limit, budget.Month, budget.Year,
	)
	return scanBudget(row)
}

// GetByPeriod returns the owner's budgets for the period joined with
// their category names, name ascending. A budget whose category row is
// gone comes back with an empty name; the evaluator treats that as an
// anomaly rather than an error here.
func (r *BudgetRepository) GetByPeriod(ownerID uuid.UUID, period domain.Period) ([]*domain.BudgetWithCategory, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.owner_id, b.category_id, b.amount, b.month, b.year,
		        b.created_at, b.updated_at, COALESCE(c.name, '')
		 FROM budgets b
		 LEFT JOIN categories c ON b.category_id = c.id
		 WHERE b.owner_id = $1 AND b.month = $2 AND b.year = $3
		 ORDER BY c.name ASC, b.id ASC`,
		ownerID, period.Month, period.Year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.BudgetWithCategory
	for rows.Next() {
		var (
			row    domain.BudgetWithCategory
			amount pgtype.Numeric
		)
		err := rows.Scan(
			&row.ID, &row.OwnerID, &row.CategoryID, &amount,
			&row.Month, &row.Year, &row.CreatedAt, &row.UpdatedAt,
			&row.CategoryName,
		)
		if err != nil {
			return nil, err
		}
		row.Limit = pgNumericToDecimal(amount)
		result = append(result, &row)
	}
	return result, rows.Err()
}

// GetByCategory returns the budget covering (category, period), if any
func (r *BudgetRepository) GetByCategory(ownerID uuid.UUID, categoryID int32, period domain.Period) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, category_id, amount, month, year, created_at, updated_at
		 FROM budgets
		 WHERE owner_id = $1 AND category_id = $2 AND month = $3 AND year = $4`,
		ownerID, categoryID, period.Month, period.Year,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes an owned budget
func (r *BudgetRepository) Delete(ownerID uuid.UUID, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM budgets WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget domain.Budget
		amount pgtype.Numeric
	)
	err := row.Scan(
		&budget.ID, &budget.OwnerID, &budget.CategoryID, &amount,
		&budget.Month, &budget.Year, &budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	budget.Limit = pgNumericToDecimal(amount)
	return &budget, nil
}
