package service

import (
	"strings"
	"testing"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	service := NewCategoryService(categoryRepo)

	created, err := service.CreateCategory(ownerA, "  Groceries ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Groceries" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if id, ok := created.Owner.UserID(); !ok || id != ownerA {
		t.Error("expected the category to be owned by the creator")
	}
}

func TestCreateCategory_RejectsBlankAndOversized(t *testing.T) {
	service := NewCategoryService(testutil.NewMockCategoryRepository())

	if _, err := service.CreateCategory(ownerA, "   "); err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for blank name, got %v", err)
	}
	long := strings.Repeat("x", domain.MaxCategoryNameLength+1)
	if _, err := service.CreateCategory(ownerA, long); err != domain.ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for oversized name, got %v", err)
	}
}

func TestCreateCategory_CaseInsensitiveUniqueness(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	service := NewCategoryService(categoryRepo)

	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Owner: domain.SharedOwner()})

	// Clashes with a shared default, case-insensitively
	if _, err := service.CreateCategory(ownerA, "FOOD"); err != domain.ErrDuplicateCategory {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}

	// A name owned by someone else is not visible, so it does not clash
	categoryRepo.AddCategory(&domain.Category{ID: 2, Name: "Hobby", Owner: domain.OwnedBy(ownerB)})
	if _, err := service.CreateCategory(ownerA, "hobby"); err != nil {
		t.Errorf("expected another user's private name to be reusable, got %v", err)
	}
}

func TestGetCategories_VisibleSet(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	service := NewCategoryService(categoryRepo)

	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Owner: domain.SharedOwner()})
	categoryRepo.AddCategory(&domain.Category{ID: 2, Name: "Art", Owner: domain.OwnedBy(ownerA)})
	categoryRepo.AddCategory(&domain.Category{ID: 3, Name: "Private", Owner: domain.OwnedBy(ownerB)})

	categories, err := service.GetCategories(ownerA)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 visible categories, got %d", len(categories))
	}
	// Name ascending
	if categories[0].Name != "Art" || categories[1].Name != "Food" {
		t.Errorf("unexpected order: %s, %s", categories[0].Name, categories[1].Name)
	}
}
