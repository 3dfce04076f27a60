package service

import (
	"github.com/google/uuid"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// UserService resolves authenticated identities to ledger owners
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ResolveUser returns the user for a validated JWT subject, creating
// the row on first sight. Session issuance and credentials live with
// the identity provider; this service only maps subjects to owners.
func (s *UserService) ResolveUser(auth0ID, email string, name *string) (*domain.User, error) {
	return s.userRepo.CreateOrGetByAuth0ID(auth0ID, email, name)
}

// GetUserIDByAuth0ID returns the owner ID for a JWT subject
func (s *UserService) GetUserIDByAuth0ID(auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}
