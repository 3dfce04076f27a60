package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pennywise/pennywise-backend/internal/domain"
)

// parsePeriod reads the month and year query parameters. Each missing
// parameter defaults independently to the current calendar value;
// values outside the valid range are rejected.
func parsePeriod(c echo.Context) (domain.Period, []ValidationError) {
	monthStr := c.QueryParam("month")
	yearStr := c.QueryParam("year")

	period := domain.CurrentPeriod(time.Now())

	if monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return domain.Period{}, []ValidationError{
				{Field: "month", Message: "Must be an integer between 1 and 12"},
			}
		}
		period.Month = month
	}

	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return domain.Period{}, []ValidationError{
				{Field: "year", Message: "Must be a valid year"},
			}
		}
		period.Year = year
	}

	if err := period.Validate(); err != nil {
		return domain.Period{}, []ValidationError{
			{Field: "period", Message: "Month must be 1-12 and year 2000 or later"},
		}
	}

	return period, nil
}
