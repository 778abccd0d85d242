package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles aggregation and report endpoints
type ReportHandler struct {
	aggregationService services.AggregationServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(aggregationService services.AggregationServiceInterface) *ReportHandler {
	return &ReportHandler{aggregationService: aggregationService}
}

// Categories returns spend volume grouped by effective category
func (h *ReportHandler) Categories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	startDate, endDate, errCode := parseReportRange(c)
	if errCode != "" {
		return SendError(c, errCode)
	}

	totals, err := h.aggregationService.CategoryTotals(userID, startDate, endDate)
	if err != nil {
		return SendSystemError(c, err)
	}

	entries := make([]dto.CategoryReportEntry, 0, len(totals))
	for _, total := range totals {
		entries = append(entries, dto.CategoryReportEntry{
			Category: total.Category,
			Total:    total.Total.StringFixed(2),
			Count:    total.Count,
		})
	}

	return c.JSON(http.StatusOK, entries)
}

// Merchants returns the user's top merchants by spend volume
func (h *ReportHandler) Merchants(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	limit := getIntParam(c, "limit", 10)

	totals, err := h.aggregationService.MerchantTotals(userID, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	entries := make([]dto.MerchantReportEntry, 0, len(totals))
	for _, total := range totals {
		entries = append(entries, dto.MerchantReportEntry{
			Merchant: total.Merchant,
			Total:    total.Total.StringFixed(2),
			Count:    total.Count,
		})
	}

	return c.JSON(http.StatusOK, entries)
}

// Monthly returns the trailing twelve month spend report
func (h *ReportHandler) Monthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	totals, err := h.aggregationService.MonthlyTotals(userID, time.Now())
	if err != nil {
		return SendSystemError(c, err)
	}

	entries := make([]dto.MonthlyReportEntry, 0, len(totals))
	for _, total := range totals {
		entries = append(entries, dto.MonthlyReportEntry{
			Month: total.Month,
			Total: total.Total.StringFixed(2),
			Count: total.Count,
		})
	}

	return c.JSON(http.StatusOK, entries)
}

// Summary returns the dashboard headline numbers
func (h *ReportHandler) Summary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	startDate, endDate, errCode := parseReportRange(c)
	if errCode != "" {
		return SendError(c, errCode)
	}

	summary, err := h.aggregationService.Summary(userID, startDate, endDate)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SummaryResponse{
		TotalSpent:       summary.TotalSpent.StringFixed(2),
		AverageAmount:    summary.AverageAmount.StringFixed(2),
		LargestExpense:   summary.LargestExpense.StringFixed(2),
		TransactionCount: summary.TransactionCount,
	})
}

func parseReportRange(c echo.Context) (*time.Time, *time.Time, errors.ErrorCode) {
	var startDate, endDate *time.Time

	if raw := c.QueryParam("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, errors.ValidationInvalidDate
		}
		startDate = &parsed
	}

	if raw := c.QueryParam("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, errors.ValidationInvalidDate
		}
		endDate = &parsed
	}

	return startDate, endDate, ""
}
