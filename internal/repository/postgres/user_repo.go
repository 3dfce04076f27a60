package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()

	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth0_id, email, name, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Auth0ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	ctx := context.Background()

	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth0_id, email, name, created_at FROM users WHERE auth0_id = $1`,
		auth0ID,
	).Scan(&user.ID, &user.Auth0ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateOrGetByAuth0ID inserts the user on first sight and returns the
// existing row otherwise. The upsert keeps concurrent first requests
// from racing into duplicate rows.
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.User, error) {
	ctx := context.Background()

	user := &domain.User{}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (auth0_id, email, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (auth0_id) DO UPDATE SET email = EXCLUDED.email
		 RETURNING id, auth0_id, email, name, created_at`,
		auth0ID, email, name,
	).Scan(&user.ID, &user.Auth0ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
