package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL.
// Shared default categories are rows with a NULL owner_id; the domain
// layer sees them through the CategoryOwner variant.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a custom category owned by a user
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	ownerID, ok := category.Owner.UserID()
	if !ok {
		// Shared defaults are seeded by migration, never through the API
		return nil, domain.ErrInvalidInput
	}

	var id int32
	var createdAt time.Time
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, owner_id) VALUES ($1, $2) RETURNING id, created_at`,
		category.Name, ownerID,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	category.ID = id
	category.CreatedAt = createdAt
	return category, nil
}

// GetByID returns the category only if it is shared or owned by userID
func (r *CategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at
		 FROM categories
		 WHERE id = $1 AND (owner_id IS NULL OR owner_id = $2)`,
		id, userID,
	)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetVisible returns shared categories plus the user's own, name ascending
func (r *CategoryRepository) GetVisible(userID uuid.UUID) ([]*domain.Category, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, owner_id, created_at
		 FROM categories
		 WHERE owner_id IS NULL OR owner_id = $1
		 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

// ExistsByName reports a case-insensitive name match within the set
// visible to userID
func (r *CategoryRepository) ExistsByName(userID uuid.UUID, name string) (bool, error) {
	ctx := context.Background()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE LOWER(name) = LOWER($1) AND (owner_id IS NULL OR owner_id = $2)
		 )`,
		name, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category  domain.Category
		ownerID   *uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&category.ID, &category.Name, &ownerID, &createdAt); err != nil {
		return nil, err
	}
	if ownerID == nil {
		category.Owner = domain.SharedOwner()
	} else {
		category.Owner = domain.OwnedBy(*ownerID)
	}
	category.CreatedAt = createdAt
	return &category, nil
}
