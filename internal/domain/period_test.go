package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func TestPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		year    int
		wantErr bool
	}{
		{"valid", 3, 2025, false},
		{"first month", 1, 2000, false},
		{"last month", 12, 2099, false},
		{"month zero", 0, 2025, true},
		{"month thirteen", 13, 2025, true},
		{"year before 2000", 6, 1999, true},
		{"negative month", -1, 2025, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPeriod(tt.month, tt.year)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPeriod(%d, %d) error = %v, wantErr %v", tt.month, tt.year, err, tt.wantErr)
			}
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	p := Period{Month: 12, Year: 2025}

	if !p.Start().Equal(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", p.Start())
	}
	// End rolls over into January of the next year
	if !p.End().Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %s", p.End())
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Month: 2, Year: 2024}

	if !p.Contains(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Error("leap day should fall inside February 2024")
	}
	if p.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("March 1 should not fall inside February")
	}
}

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	p := CurrentPeriod(now)

	if p.Month != 3 || p.Year != 2025 {
		t.Errorf("expected March 2025, got %+v", p)
	}
}

func TestCategoryOwnerVisibility(t *testing.T) {
	alice := mustUUID("11111111-1111-1111-1111-111111111111")
	bob := mustUUID("22222222-2222-2222-2222-222222222222")

	shared := SharedOwner()
	owned := OwnedBy(alice)

	if !shared.VisibleTo(alice) || !shared.VisibleTo(bob) {
		t.Error("shared categories must be visible to everyone")
	}
	if !owned.VisibleTo(alice) {
		t.Error("owner must see their own category")
	}
	if owned.VisibleTo(bob) {
		t.Error("other users must not see an owned category")
	}
	if _, ok := shared.UserID(); ok {
		t.Error("shared owner must not report a user ID")
	}
	if id, ok := owned.UserID(); !ok || id != alice {
		t.Error("owned category must report its owner")
	}
}
