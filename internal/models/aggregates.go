package models

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the spend-by-category report. Total is the
// sum of transaction magnitudes, so expenses and refunds both count
// toward volume.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MerchantTotal is one row of the spend-by-merchant report.
type MerchantTotal struct {
	Merchant string          `json:"merchant"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MonthlyTotal is one month bucket of the trailing-year report. Month is
// formatted YYYY-MM.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// SpendingSummary holds the headline numbers for a user's dashboard.
type SpendingSummary struct {
	TotalSpent       decimal.Decimal `json:"total_spent"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
	LargestExpense   decimal.Decimal `json:"largest_expense"`
	TransactionCount int64           `json:"transaction_count"`
}
