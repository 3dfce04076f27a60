package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, owner_id, amount, kind, category_id, date, description, created_at`

// Create inserts a transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (owner_id, amount, kind, category_id, date, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transactionColumns,
		transaction.OwnerID, amount, transaction.Kind, transaction.CategoryID,
		transaction.Date, transaction.Description,
	)
	return scanTransaction(row)
}

// GetByID retrieves an owned transaction
func (r *TransactionRepository) GetByID(ownerID uuid.UUID, id int32) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetByPeriod returns the owner's full snapshot for a period, the input
// the aggregation engine computes over
func (r *TransactionRepository) GetByPeriod(ownerID uuid.UUID, period domain.Period) ([]*domain.Transaction, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE owner_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date ASC, id ASC`,
		ownerID, period.Start(), period.End(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, transaction)
	}
	return result, rows.Err()
}

// GetByOwner retrieves transactions with optional filters and pagination
func (r *TransactionRepository) GetByOwner(ownerID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	where := `WHERE owner_id = $1`
	args := []interface{}{ownerID}

	if filters.Period != nil {
		where += fmt.Sprintf(` AND date >= $%d AND date < $%d`, len(args)+1, len(args)+2)
		args = append(args, filters.Period.Start(), filters.Period.End())
	}
	if filters.Kind != nil {
		where += fmt.Sprintf(` AND kind = $%d`, len(args)+1)
		args = append(args, *filters.Kind)
	}
	if filters.CategoryID != nil {
		where += fmt.Sprintf(` AND category_id = $%d`, len(args)+1)
		args = append(args, *filters.CategoryID)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	page := filters.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	query := fmt.Sprintf(
		`SELECT %s FROM transactions %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make([]*domain.Transaction, 0, pageSize)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedTransactions{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Update replaces an owned transaction's fields. A row owned by another
// user matches zero rows, which is indistinguishable from a missing row.
func (r *TransactionRepository) Update(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE transactions
		 SET amount = $1, kind = $2, category_id = $3, date = $4, description = $5
		 WHERE id = $6 AND owner_id = $7
		 RETURNING `+transactionColumns,
		amount, transaction.Kind, transaction.CategoryID, transaction.Date,
		transaction.Description, transaction.ID, transaction.OwnerID,
	)
	updated, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an owned transaction
func (r *TransactionRepository) Delete(ownerID uuid.UUID, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		amount      pgtype.Numeric
	)
	err := row.Scan(
		&transaction.ID,
		&transaction.OwnerID,
		&amount,
		&transaction.Kind,
		&transaction.CategoryID,
		&transaction.Date,
		&transaction.Description,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	transaction.Amount = pgNumericToDecimal(amount)
	return &transaction, nil
}
