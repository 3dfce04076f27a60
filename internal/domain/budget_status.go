package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultAlertThreshold is the percentage-used level at which a budget
// status carries an alert. Overridable via configuration.
const DefaultAlertThreshold = 90

// AlertMessage is the warning attached to statuses at or over the threshold
const AlertMessage = "You are at or near your budget limit"

// BudgetStatus compares one budget's limit against actual spend
type BudgetStatus struct {
	BudgetID       int32           `json:"budgetId"`
	CategoryID     int32           `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	Limit          decimal.Decimal `json:"limit"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	Alert          *string         `json:"alert,omitempty"`
}

// OverThreshold reports whether the status carries an alert
func (s *BudgetStatus) OverThreshold() bool {
	return s.Alert != nil
}

// EvaluateBudgets computes a status row per budget against the expense
// breakdown for the same period. Rows are sorted by percentage used
// descending, ties broken by category name ascending. Budgets whose
// category name could not be resolved are returned in skipped instead
// of crashing the evaluation; the caller decides how to report them.
// A budget with a non-positive limit is invalid input: it would turn
// the percentage into a division by zero or a negative rate, so the
// whole evaluation is rejected before computing.
func EvaluateBudgets(budgets []*BudgetWithCategory, breakdown []CategoryTotal, threshold decimal.Decimal) (statuses []BudgetStatus, skipped []*BudgetWithCategory, err error) {
	spentByName := make(map[string]decimal.Decimal, len(breakdown))
	for _, row := range breakdown {
		spentByName[row.CategoryName] = row.Total
	}

	hundred := decimal.NewFromInt(100)
	statuses = make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		if b.Limit.LessThanOrEqual(decimal.Zero) {
			return nil, nil, ErrInvalidLimit
		}
		if b.CategoryName == "" {
			skipped = append(skipped, b)
			continue
		}

		spent := spentByName[b.CategoryName]
		pct := spent.Div(b.Limit).Mul(hundred).Round(1)

		status := BudgetStatus{
			BudgetID:       b.ID,
			CategoryID:     b.CategoryID,
			CategoryName:   b.CategoryName,
			Limit:          b.Limit,
			Spent:          spent,
			Remaining:      b.Limit.Sub(spent),
			PercentageUsed: pct,
		}
		if pct.GreaterThanOrEqual(threshold) {
			msg := AlertMessage
			status.Alert = &msg
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		if !statuses[i].PercentageUsed.Equal(statuses[j].PercentageUsed) {
			return statuses[i].PercentageUsed.GreaterThan(statuses[j].PercentageUsed)
		}
		return statuses[i].CategoryName < statuses[j].CategoryName
	})
	return statuses, skipped, nil
}
