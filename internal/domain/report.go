package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName is the bucket for expenses without a resolvable category
const UncategorizedName = "Uncategorized"

// Summary holds the income/expense totals for one owner and period
type Summary struct {
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryTotal is one row of a category breakdown
type CategoryTotal struct {
	CategoryName string          `json:"category"`
	Total        decimal.Decimal `json:"total"`
}

// SeriesPoint is one day's expense total
type SeriesPoint struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Summarize computes income and expense totals over a ledger snapshot.
// An empty snapshot yields an all-zero summary.
func Summarize(transactions []*Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range transactions {
		switch tx.Kind {
		case TransactionKindIncome:
			income = income.Add(tx.Amount)
		case TransactionKindExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Summary{
		IncomeTotal:  income,
		ExpenseTotal: expense,
		Balance:      income.Sub(expense),
	}
}

// ExpenseBreakdown groups expense transactions by category name, sorted
// by total descending with ties broken by name ascending. Transactions
// without a category, or whose category is missing from nameByID, land
// in the Uncategorized bucket so that the breakdown totals always sum
// to the expense total.
func ExpenseBreakdown(transactions []*Transaction, nameByID map[int32]string) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Kind != TransactionKindExpense {
			continue
		}
		name := UncategorizedName
		if tx.CategoryID != nil {
			if n, ok := nameByID[*tx.CategoryID]; ok {
				name = n
			}
		}
		totals[name] = totals[name].Add(tx.Amount)
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{CategoryName: name, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result
}

// ExpenseSeries groups expense transactions by calendar date, ascending.
// Days without expenses are omitted rather than zero-filled. Dates are
// read in UTC so that zone-shifted representations of the same instant
// land in the same bucket.
func ExpenseSeries(transactions []*Transaction) []SeriesPoint {
	totals := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Kind != TransactionKindExpense {
			continue
		}
		d := tx.Date.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		totals[day] = totals[day].Add(tx.Amount)
	}

	result := make([]SeriesPoint, 0, len(totals))
	for day, total := range totals {
		result = append(result, SeriesPoint{Date: day, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
