package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func budgetRow(id, categoryID int32, name string, limit int64) *BudgetWithCategory {
	return &BudgetWithCategory{
		Budget: Budget{
			ID:         id,
			CategoryID: categoryID,
			Limit:      decimal.NewFromInt(limit),
			Month:      3,
			Year:       2025,
		},
		CategoryName: name,
	}
}

func threshold() decimal.Decimal {
	return decimal.NewFromInt(DefaultAlertThreshold)
}

func TestEvaluateBudgets_OverBudget(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Food", 100)}
	breakdown := []CategoryTotal{
		{CategoryName: "Food", Total: decimal.NewFromInt(120)},
		{CategoryName: "Transport", Total: decimal.NewFromInt(30)},
	}

	statuses, skipped, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("expected no skipped budgets, got %d", len(skipped))
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}

	s := statuses[0]
	if !s.Spent.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected spent 120, got %s", s.Spent)
	}
	if !s.Remaining.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("expected remaining -20, got %s", s.Remaining)
	}
	if s.PercentageUsed.String() != "120" {
		t.Errorf("expected percentage 120, got %s", s.PercentageUsed)
	}
	if s.Alert == nil {
		t.Error("expected alert to be set when over budget")
	}
}

func TestEvaluateBudgets_NoExpensesForCategory(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Travel", 500)}

	statuses, _, err := EvaluateBudgets(budgets, nil, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if !statuses[0].Spent.Equal(decimal.Zero) {
		t.Errorf("expected spent 0, got %s", statuses[0].Spent)
	}
	if !statuses[0].Remaining.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected remaining 500, got %s", statuses[0].Remaining)
	}
	if statuses[0].Alert != nil {
		t.Error("expected no alert at 0% used")
	}
}

func TestEvaluateBudgets_AlertAtExactThreshold(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Food", 50)}
	breakdown := []CategoryTotal{{CategoryName: "Food", Total: decimal.NewFromInt(45)}}

	statuses, _, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if statuses[0].PercentageUsed.String() != "90" {
		t.Errorf("expected percentage 90, got %s", statuses[0].PercentageUsed)
	}
	if statuses[0].Alert == nil {
		t.Error("expected alert at exactly 90%")
	}
}

func TestEvaluateBudgets_BelowThresholdNoAlert(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Food", 100)}
	breakdown := []CategoryTotal{{CategoryName: "Food", Total: decimal.NewFromInt(89)}}

	statuses, _, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if statuses[0].Alert != nil {
		t.Error("expected no alert below the threshold")
	}
}

func TestEvaluateBudgets_PercentageRoundedToOneDecimal(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Food", 300)}
	breakdown := []CategoryTotal{{CategoryName: "Food", Total: decimal.NewFromInt(100)}}

	statuses, _, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 100/300*100 = 33.333... rounds to 33.3
	if statuses[0].PercentageUsed.String() != "33.3" {
		t.Errorf("expected percentage 33.3, got %s", statuses[0].PercentageUsed)
	}
}

func TestEvaluateBudgets_SortedByPercentageThenName(t *testing.T) {
	budgets := []*BudgetWithCategory{
		budgetRow(1, 1, "Food", 100),
		budgetRow(2, 2, "Transport", 100),
		budgetRow(3, 3, "Books", 100),
		budgetRow(4, 4, "Rent", 200),
	}
	breakdown := []CategoryTotal{
		{CategoryName: "Food", Total: decimal.NewFromInt(50)},
		{CategoryName: "Transport", Total: decimal.NewFromInt(50)},
		{CategoryName: "Books", Total: decimal.NewFromInt(50)},
		{CategoryName: "Rent", Total: decimal.NewFromInt(180)},
	}

	statuses, _, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"Rent", "Books", "Food", "Transport"}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
	}
	for i, name := range want {
		if statuses[i].CategoryName != name {
			t.Errorf("row %d: expected %s, got %s", i, name, statuses[i].CategoryName)
		}
	}
}

func TestEvaluateBudgets_SkipsMissingCategoryName(t *testing.T) {
	budgets := []*BudgetWithCategory{
		budgetRow(1, 1, "Food", 100),
		budgetRow(2, 99, "", 100), // dangling category reference
	}
	breakdown := []CategoryTotal{{CategoryName: "Food", Total: decimal.NewFromInt(10)}}

	statuses, skipped, err := EvaluateBudgets(budgets, breakdown, threshold())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(statuses) != 1 {
		t.Errorf("expected 1 status, got %d", len(statuses))
	}
	if len(skipped) != 1 || skipped[0].ID != 2 {
		t.Errorf("expected budget 2 to be skipped, got %v", skipped)
	}
}

func TestEvaluateBudgets_RejectsNonPositiveLimit(t *testing.T) {
	budgets := []*BudgetWithCategory{budgetRow(1, 1, "Food", 0)}

	_, _, err := EvaluateBudgets(budgets, nil, threshold())
	if err != ErrInvalidLimit {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}
