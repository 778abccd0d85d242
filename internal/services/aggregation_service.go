package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// trailingMonths is the width of the monthly spending report.
const trailingMonths = 12

// aggregationService implements AggregationServiceInterface
type aggregationService struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

// NewAggregationService creates a new aggregation service
func NewAggregationService(transactionRepo repositories.TransactionRepositoryInterface) AggregationServiceInterface {
	return &aggregationService{
		transactionRepo: transactionRepo,
	}
}

// CategoryTotals reports spend volume grouped by effective category
func (s *aggregationService) CategoryTotals(userID uuid.UUID, startDate, endDate *time.Time) ([]models.CategoryTotal, error) {
	return s.transactionRepo.GetCategoryTotals(userID, startDate, endDate)
}

// MerchantTotals reports spend volume grouped by merchant
func (s *aggregationService) MerchantTotals(userID uuid.UUID, limit int) ([]models.MerchantTotal, error) {
	return s.transactionRepo.GetMerchantTotals(userID, limit)
}

// MonthlyTotals reports spend volume for the trailing twelve months,
// oldest first. Months with no transactions appear as zero buckets so
// chart axes stay stable.
func (s *aggregationService) MonthlyTotals(userID uuid.UUID, now time.Time) ([]models.MonthlyTotal, error) {
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := currentMonth.AddDate(0, -(trailingMonths - 1), 0)
	windowEnd := currentMonth.AddDate(0, 1, 0).Add(-time.Second)

	transactions, err := s.transactionRepo.GetByDateRange(userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*models.MonthlyTotal, trailingMonths)
	totals := make([]models.MonthlyTotal, 0, trailingMonths)
	for i := 0; i < trailingMonths; i++ {
		month := windowStart.AddDate(0, i, 0).Format("2006-01")
		totals = append(totals, models.MonthlyTotal{Month: month, Total: decimal.Zero})
	}
	for i := range totals {
		buckets[totals[i].Month] = &totals[i]
	}

	for i := range transactions {
		bucket, ok := buckets[transactions[i].Date.Format("2006-01")]
		if !ok {
			continue
		}
		bucket.Total = bucket.Total.Add(transactions[i].AbsAmount())
		bucket.Count++
	}

	return totals, nil
}

// Summary computes the dashboard headline numbers
func (s *aggregationService) Summary(userID uuid.UUID, startDate, endDate *time.Time) (*models.SpendingSummary, error) {
	return s.transactionRepo.GetSpendingSummary(userID, startDate, endDate)
}

// SpentForBudget sums the user's spend in the budget's category over the
// current budget period.
func (s *aggregationService) SpentForBudget(userID uuid.UUID, budget *models.Budget, now time.Time) (decimal.Decimal, error) {
	start, end := budgetWindow(budget.Period, now)

	totals, err := s.transactionRepo.GetCategoryTotals(userID, &start, &end)
	if err != nil {
		return decimal.Zero, err
	}

	for _, total := range totals {
		if total.Category == budget.Category {
			return total.Total, nil
		}
	}

	return decimal.Zero, nil
}

// budgetWindow returns the bounds of the period containing now.
func budgetWindow(period string, now time.Time) (time.Time, time.Time) {
	year, month, _ := now.Date()

	switch period {
	case models.BudgetPeriodYearly:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0).Add(-time.Second)
	case models.BudgetPeriodQuarterly:
		quarterStart := time.Month(((int(month)-1)/3)*3 + 1)
		start := time.Date(year, quarterStart, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0).Add(-time.Second)
	default:
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0).Add(-time.Second)
	}
}
