package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the two closed variants
func (k TransactionKind) Valid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// Transaction is a single money movement. Amount is always positive;
// direction is carried by Kind alone.
type Transaction struct {
	ID          int32           `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	CategoryID  *int32          `json:"categoryId,omitempty"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type TransactionFilters struct {
	Period     *Period
	Kind       *TransactionKind
	CategoryID *int32
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(ownerID uuid.UUID, id int32) (*Transaction, error)
	GetByOwner(ownerID uuid.UUID, filters *TransactionFilters) (*PaginatedTransactions, error)
	// GetByPeriod returns the owner's full ledger snapshot for the
	// period, the input the aggregation engine computes over
	GetByPeriod(ownerID uuid.UUID, period Period) ([]*Transaction, error)
	// Update and Delete are owner-scoped: a row that exists but belongs
	// to another owner is reported as ErrTransactionNotFound
	Update(transaction *Transaction) (*Transaction, error)
	Delete(ownerID uuid.UUID, id int32) error
}
