package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SummaryResponse represents a monthly summary in API responses
type SummaryResponse struct {
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	IncomeTotal  string `json:"incomeTotal"`
	ExpenseTotal string `json:"expenseTotal"`
	Balance      string `json:"balance"`
}

// CategoryTotalResponse represents one breakdown bucket in API responses
type CategoryTotalResponse struct {
	CategoryName string `json:"categoryName"`
	Total        string `json:"total"`
}

// SeriesPointResponse represents one day of spending in API responses
type SeriesPointResponse struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

// CategoryBreakdownResponse wraps breakdown buckets with their period
type CategoryBreakdownResponse struct {
	Month int                     `json:"month"`
	Year  int                     `json:"year"`
	Items []CategoryTotalResponse `json:"items"`
}

// TimeSeriesResponse wraps series points with their period
type TimeSeriesResponse struct {
	Month  int                   `json:"month"`
	Year   int                   `json:"year"`
	Points []SeriesPointResponse `json:"points"`
}

// GetSummary handles GET /api/v1/reports/summary
func (h *ReportHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	period, verrs := parsePeriod(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid period", verrs)
	}

	summary, err := h.reportService.Summary(userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build summary")
		return NewInternalError(c, "Failed to build summary")
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Month:        period.Month,
		Year:         period.Year,
		IncomeTotal:  summary.IncomeTotal.StringFixed(2),
		ExpenseTotal: summary.ExpenseTotal.StringFixed(2),
		Balance:      summary.Balance.StringFixed(2),
	})
}

// GetCategoryBreakdown handles GET /api/v1/reports/category-breakdown
func (h *ReportHandler) GetCategoryBreakdown(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	period, verrs := parsePeriod(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid period", verrs)
	}

	breakdown, err := h.reportService.CategoryBreakdown(userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build category breakdown")
		return NewInternalError(c, "Failed to build category breakdown")
	}

	items := make([]CategoryTotalResponse, len(breakdown))
	for i, bucket := range breakdown {
		items[i] = CategoryTotalResponse{
			CategoryName: bucket.CategoryName,
			Total:        bucket.Total.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, CategoryBreakdownResponse{
		Month: period.Month,
		Year:  period.Year,
		Items: items,
	})
}

// GetTimeSeries handles GET /api/v1/reports/time-series
func (h *ReportHandler) GetTimeSeries(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	period, verrs := parsePeriod(c)
	if verrs != nil {
		return NewValidationError(c, "Invalid period", verrs)
	}

	series, err := h.reportService.TimeSeries(userID, period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to build time series")
		return NewInternalError(c, "Failed to build time series")
	}

	points := make([]SeriesPointResponse, len(series))
	for i, point := range series {
		points[i] = SeriesPointResponse{
			Date:  point.Date.Format("2006-01-02"),
			Total: point.Total.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, TimeSeriesResponse{
		Month:  period.Month,
		Year:   period.Year,
		Points: points,
	})
}
