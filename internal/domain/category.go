package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryOwner is a tagged variant: a category is either shared
// (visible to every user) or owned by a single user. Modeling this as a
// variant instead of a nullable ID keeps the visibility rule a pure
// predicate.
type CategoryOwner struct {
	userID uuid.UUID
	shared bool
}

// SharedOwner returns the owner tag for a shared default category
func SharedOwner() CategoryOwner {
	return CategoryOwner{shared: true}
}

// OwnedBy returns the owner tag for a user-created category
func OwnedBy(userID uuid.UUID) CategoryOwner {
	return CategoryOwner{userID: userID}
}

// IsShared reports whether the category is a shared default
func (o CategoryOwner) IsShared() bool {
	return o.shared
}

// UserID returns the owning user and whether one exists
func (o CategoryOwner) UserID() (uuid.UUID, bool) {
	if o.shared {
		return uuid.Nil, false
	}
	return o.userID, true
}

// VisibleTo reports whether a user may see and reference the category:
// shared categories are visible to everyone, owned ones only to their
// owner.
func (o CategoryOwner) VisibleTo(userID uuid.UUID) bool {
	return o.shared || o.userID == userID
}

type Category struct {
	ID        int32         `json:"id"`
	Name      string        `json:"name"`
	Owner     CategoryOwner `json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CategoryRepository interface {
	// Create inserts a custom category owned by a user
	Create(category *Category) (*Category, error)
	// GetByID returns the category only if it is visible to userID
	GetByID(userID uuid.UUID, id int32) (*Category, error)
	// GetVisible returns shared categories plus the user's own, name ascending
	GetVisible(userID uuid.UUID) ([]*Category, error)
	// ExistsByName reports a case-insensitive name match within the
	// set visible to userID
	ExistsByName(userID uuid.UUID, name string) (bool, error)
}
