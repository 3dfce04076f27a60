package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidPeriod       = errors.New("invalid period")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidLimit        = errors.New("limit must be positive")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrDuplicateCategory   = errors.New("category name already in use")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalError       = errors.New("internal error")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxDescriptionLength  = 255
)
