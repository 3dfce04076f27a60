package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

func postBudget(t *testing.T, f *handlerFixture, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := f.budgets.SetBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	return rec
}

func TestSetBudget_CreatesAndReplaces(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	food := &domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)}
	f.categoryRepo.AddCategory(food)

	rec := postBudget(t, f, userID, `{"categoryId":1,"limit":"500","month":3,"year":2025}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if first.Limit != "500.00" {
		t.Errorf("Expected limit '500.00', got %s", first.Limit)
	}

	// Same natural key replaces the limit instead of creating a row
	rec = postBudget(t, f, userID, `{"categoryId":1,"limit":"750","month":3,"year":2025}`)
	var second BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected replacement to keep ID %d, got %d", first.ID, second.ID)
	}
	if second.Limit != "750.00" {
		t.Errorf("Expected limit '750.00', got %s", second.Limit)
	}
	if len(f.budgetRepo.Budgets) != 1 {
		t.Errorf("Expected a single budget row, got %d", len(f.budgetRepo.Budgets))
	}
}

func TestSetBudget_Validation(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	other := uuid.New()
	f.categoryRepo.AddCategory(&domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)})
	f.categoryRepo.AddCategory(&domain.Category{Name: "Secret", Owner: domain.OwnedBy(other)})

	cases := []struct {
		name string
		body string
	}{
		{"missing category", `{"limit":"500","month":3,"year":2025}`},
		{"unknown category", `{"categoryId":99,"limit":"500","month":3,"year":2025}`},
		{"other user's category", `{"categoryId":2,"limit":"500","month":3,"year":2025}`},
		{"non-numeric limit", `{"categoryId":1,"limit":"abc","month":3,"year":2025}`},
		{"zero limit", `{"categoryId":1,"limit":"0","month":3,"year":2025}`},
		{"negative limit", `{"categoryId":1,"limit":"-10","month":3,"year":2025}`},
		{"bad month", `{"categoryId":1,"limit":"500","month":13,"year":2025}`},
		{"year too early", `{"categoryId":1,"limit":"500","month":3,"year":1999}`},
	}
	for _, tc := range cases {
		rec := postBudget(t, f, userID, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", tc.name, rec.Code)
		}
	}
	if len(f.budgetRepo.Budgets) != 0 {
		t.Errorf("Expected no budgets persisted after rejected input, got %d", len(f.budgetRepo.Budgets))
	}
}

func TestSetBudget_DefaultsPeriodIndependently(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	f.categoryRepo.AddCategory(&domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)})

	// Month supplied alone; the year falls back on its own to the current one
	rec := postBudget(t, f, userID, `{"categoryId":1,"limit":"500","month":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Month != 3 {
		t.Errorf("Expected month 3, got %d", response.Month)
	}
	if response.Year != time.Now().Year() {
		t.Errorf("Expected current year %d, got %d", time.Now().Year(), response.Year)
	}
}

func TestSetBudget_PublishesBudgetUpdated(t *testing.T) {
	f := newHandlerFixture()
	userID := uuid.New()
	f.categoryRepo.AddCategory(&domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)})

	publisher := &capturingPublisher{}
	f.budgetService.SetEventPublisher(publisher)

	rec := postBudget(t, f, userID, `{"categoryId":1,"limit":"500","month":3,"year":2025}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != "budget.updated" {
		t.Errorf("Expected a single budget.updated event, got %+v", publisher.events)
	}
}

func TestDeleteBudget(t *testing.T) {
	e := echo.New()
	f := newHandlerFixture()
	userID := uuid.New()
	other := uuid.New()
	food := &domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)}
	f.categoryRepo.AddCategory(food)

	march := domain.Period{Month: 3, Year: 2025}
	if _, err := f.budgetService.SetBudget(userID, food.ID, march, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("SetBudget failed: %v", err)
	}

	del := func(asUser uuid.UUID, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		setupAuthContext(c, asUser)
		if err := f.budgets.DeleteBudget(c); err != nil {
			t.Fatalf("Expected JSON response, got error: %v", err)
		}
		return rec
	}

	// Another user's budget is reported as not found
	if rec := del(other, "1"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another user's budget, got %d", rec.Code)
	}
	if len(f.budgetRepo.Budgets) != 1 {
		t.Fatalf("Expected the budget to survive, got %d rows", len(f.budgetRepo.Budgets))
	}

	if rec := del(userID, "1"); rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(f.budgetRepo.Budgets) != 0 {
		t.Errorf("Expected no budgets after delete, got %d", len(f.budgetRepo.Budgets))
	}

	// A second delete of the same row is not found
	if rec := del(userID, "1"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for a deleted budget, got %d", rec.Code)
	}
}

func TestGetBudgetStatus_AlertsAndSorts(t *testing.T) {
	e := echo.New()
	f := newHandlerFixture()
	userID := uuid.New()

	food := &domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)}
	fun := &domain.Category{Name: "Entertainment", Owner: domain.OwnedBy(userID)}
	f.categoryRepo.AddCategory(food)
	f.categoryRepo.AddCategory(fun)

	march := domain.Period{Month: 3, Year: 2025}
	if _, err := f.budgetService.SetBudget(userID, food.ID, march, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("SetBudget failed: %v", err)
	}
	if _, err := f.budgetService.SetBudget(userID, fun.ID, march, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("SetBudget failed: %v", err)
	}

	f.transactionRepo.AddTransaction(&domain.Transaction{
		OwnerID: userID, Amount: decimal.NewFromInt(120), Kind: domain.TransactionKindExpense,
		CategoryID: &food.ID, Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		OwnerID: userID, Amount: decimal.NewFromInt(100), Kind: domain.TransactionKindExpense,
		CategoryID: &fun.ID, Date: time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/status?month=3&year=2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := f.budgets.GetBudgetStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response BudgetStatusListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Month != 3 || response.Year != 2025 {
		t.Errorf("Expected period 3/2025 in the envelope, got %d/%d", response.Month, response.Year)
	}
	statuses := response.Statuses
	if len(statuses) != 2 {
		t.Fatalf("Expected 2 statuses, got %d", len(statuses))
	}

	// Over-budget Food sorts first
	if statuses[0].CategoryName != "Food" {
		t.Errorf("Expected Food first, got %s", statuses[0].CategoryName)
	}
	if statuses[0].Spent != "120.00" || statuses[0].Remaining != "-20.00" {
		t.Errorf("Expected spent 120.00 remaining -20.00, got %s %s", statuses[0].Spent, statuses[0].Remaining)
	}
	if statuses[0].PercentageUsed != "120.0" {
		t.Errorf("Expected percentage '120.0', got %s", statuses[0].PercentageUsed)
	}
	if statuses[0].Alert == nil {
		t.Error("Expected alert on over-budget status")
	}

	// 100/300 is 33.3 percent, under threshold
	if statuses[1].CategoryName != "Entertainment" {
		t.Errorf("Expected Entertainment second, got %s", statuses[1].CategoryName)
	}
	if statuses[1].PercentageUsed != "33.3" {
		t.Errorf("Expected percentage '33.3', got %s", statuses[1].PercentageUsed)
	}
	if statuses[1].Alert != nil {
		t.Error("Expected no alert under threshold")
	}
}

func TestGetBudgetStatus_EmptyPeriod(t *testing.T) {
	e := echo.New()
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/status?month=3&year=2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := f.budgets.GetBudgetStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response BudgetStatusListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Month != 3 || response.Year != 2025 {
		t.Errorf("Expected period 3/2025 in the envelope, got %d/%d", response.Month, response.Year)
	}
	if len(response.Statuses) != 0 {
		t.Errorf("Expected empty status list, got %d rows", len(response.Statuses))
	}
}

func TestGetBudgets_OrderedByCategoryName(t *testing.T) {
	e := echo.New()
	f := newHandlerFixture()
	userID := uuid.New()

	food := &domain.Category{Name: "Food", Owner: domain.OwnedBy(userID)}
	auto := &domain.Category{Name: "Auto", Owner: domain.OwnedBy(userID)}
	f.categoryRepo.AddCategory(food)
	f.categoryRepo.AddCategory(auto)

	// Created after Food, yet Auto lists first by name
	march := domain.Period{Month: 3, Year: 2025}
	if _, err := f.budgetService.SetBudget(userID, food.ID, march, decimal.NewFromInt(250)); err != nil {
		t.Fatalf("SetBudget failed: %v", err)
	}
	if _, err := f.budgetService.SetBudget(userID, auto.ID, march, decimal.NewFromInt(90)); err != nil {
		t.Fatalf("SetBudget failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets?month=3&year=2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := f.budgets.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 budgets, got %d", len(response))
	}
	if response[0].CategoryName != "Auto" || response[1].CategoryName != "Food" {
		t.Errorf("Expected Auto then Food, got %s then %s", response[0].CategoryName, response[1].CategoryName)
	}
	if response[1].Limit != "250.00" {
		t.Errorf("Expected limit '250.00', got %s", response[1].Limit)
	}
}
