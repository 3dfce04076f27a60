package domain

import "time"

// MinBudgetYear is the earliest year accepted in a period
const MinBudgetYear = 2000

// Period identifies a calendar month. Every derived view and budget is
// scoped to exactly one Period.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod builds a validated Period
func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// CurrentPeriod returns the period for the given instant. Callers that
// accept an optional period use this as the default; the engine itself
// never reads the clock.
func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// Validate checks the month and year ranges
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	if p.Year < MinBudgetYear {
		return ErrInvalidPeriod
	}
	return nil
}

// Start returns the first day of the period at midnight UTC
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following period at midnight UTC,
// so the period covers [Start, End)
func (p Period) End() time.Time {
	return time.Date(p.Year, time.Month(p.Month)+1, 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the calendar date of t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}
