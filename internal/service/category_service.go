package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCategory creates a custom category owned by the user. The name
// must be unique, case-insensitively, within the set the user can see
// (shared defaults plus their own).
func (s *CategoryService) CreateCategory(ownerID uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.categoryRepo.ExistsByName(ownerID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateCategory
	}

	category := &domain.Category{
		Name:  name,
		Owner: domain.OwnedBy(ownerID),
	}
	created, err := s.categoryRepo.Create(category)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, websocket.CategoryCreated(created))
	}
	return created, nil
}

// GetCategories returns the categories visible to the user, name ascending
func (s *CategoryService) GetCategories(ownerID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetVisible(ownerID)
}
