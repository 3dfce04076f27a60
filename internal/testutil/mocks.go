package testutil

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByAuth0ID map[string]*domain.User
	ByID      map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByAuth0ID: make(map[string]*domain.User),
		ByID:      make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.ByAuth0ID[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.User, error) {
	if user, ok := m.ByAuth0ID[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.ByAuth0ID[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByAuth0ID[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == 0 {
		category.ID = m.NextID
	}
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// Create inserts a custom category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID returns the category only if visible to userID
func (m *MockCategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || !category.Owner.VisibleTo(userID) {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetVisible returns shared categories plus the user's own, name ascending
func (m *MockCategoryRepository) GetVisible(userID uuid.UUID) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, category := range m.Categories {
		if category.Owner.VisibleTo(userID) {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ExistsByName reports a case-insensitive name match within the visible set
func (m *MockCategoryRepository) ExistsByName(userID uuid.UUID, name string) (bool, error) {
	for _, category := range m.Categories {
		if category.Owner.VisibleTo(userID) && strings.EqualFold(category.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	if tx.ID == 0 {
		tx.ID = m.NextID
	}
	if tx.ID >= m.NextID {
		m.NextID = tx.ID + 1
	}
	m.Transactions[tx.ID] = tx
}

// Create inserts a transaction
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	tx.ID = m.NextID
	m.NextID++
	tx.CreatedAt = time.Now()
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// GetByID retrieves an owned transaction
func (m *MockTransactionRepository) GetByID(ownerID uuid.UUID, id int32) (*domain.Transaction, error) {
	tx, ok := m.Transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// GetByOwner retrieves transactions with filters and pagination
func (m *MockTransactionRepository) GetByOwner(ownerID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	var matched []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.OwnerID != ownerID {
			continue
		}
		if filters.Period != nil && !filters.Period.Contains(tx.Date) {
			continue
		}
		if filters.Kind != nil && tx.Kind != *filters.Kind {
			continue
		}
		if filters.CategoryID != nil {
			if tx.CategoryID == nil || *tx.CategoryID != *filters.CategoryID {
				continue
			}
		}
		matched = append(matched, tx)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	page := filters.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	total := int64(len(matched))
	start := int((page - 1) * pageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(pageSize)
	if end > len(matched) {
		end = len(matched)
	}

	totalPages := int32((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedTransactions{
		Data:       matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// GetByPeriod returns the owner's snapshot for the period
func (m *MockTransactionRepository) GetByPeriod(ownerID uuid.UUID, period domain.Period) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.OwnerID == ownerID && period.Contains(tx.Date) {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update replaces an owned transaction's fields
func (m *MockTransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	existing, ok := m.Transactions[tx.ID]
	if !ok || existing.OwnerID != tx.OwnerID {
		return nil, domain.ErrTransactionNotFound
	}
	tx.CreatedAt = existing.CreatedAt
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// Delete removes an owned transaction
func (m *MockTransactionRepository) Delete(ownerID uuid.UUID, id int32) error {
	tx, ok := m.Transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets    map[int32]*domain.Budget
	Categories *MockCategoryRepository
	NextID     int32
	mu         sync.Mutex
}

// NewMockBudgetRepository creates a new MockBudgetRepository. The
// category repository is used to join category names like the real
// store does; pass the same instance the service under test uses.
func NewMockBudgetRepository(categories *MockCategoryRepository) *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:    make(map[int32]*domain.Budget),
		Categories: categories,
		NextID:     1,
	}
}

// Upsert creates or replaces the budget for its natural key
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Budgets {
		if existing.OwnerID == budget.OwnerID &&
			existing.CategoryID == budget.CategoryID &&
			existing.Month == budget.Month &&
			existing.Year == budget.Year {
			existing.Limit = budget.Limit
			existing.UpdatedAt = time.Now()
			return existing, nil
		}
	}

	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByPeriod returns the owner's budgets for the period with category names joined
func (m *MockBudgetRepository) GetByPeriod(ownerID uuid.UUID, period domain.Period) ([]*domain.BudgetWithCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.BudgetWithCategory
	for _, budget := range m.Budgets {
		if budget.OwnerID != ownerID || budget.Month != period.Month || budget.Year != period.Year {
			continue
		}
		row := &domain.BudgetWithCategory{Budget: *budget}
		if m.Categories != nil {
			if category, ok := m.Categories.Categories[budget.CategoryID]; ok {
				row.CategoryName = category.Name
			}
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryName != result[j].CategoryName {
			return result[i].CategoryName < result[j].CategoryName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// GetByCategory returns the budget covering (category, period), if any
func (m *MockBudgetRepository) GetByCategory(ownerID uuid.UUID, categoryID int32, period domain.Period) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, budget := range m.Budgets {
		if budget.OwnerID == ownerID && budget.CategoryID == categoryID &&
			budget.Month == period.Month && budget.Year == period.Year {
			return budget, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// Delete removes an owned budget
func (m *MockBudgetRepository) Delete(ownerID uuid.UUID, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	budget, ok := m.Budgets[id]
	if !ok || budget.OwnerID != ownerID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}
