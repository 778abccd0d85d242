package dto

// ReportQuery bounds a report to a date range
type ReportQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// CategoryReportEntry is one slice of the spend-by-category report
type CategoryReportEntry struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int64  `json:"count"`
}

// MerchantReportEntry is one row of the spend-by-merchant report
type MerchantReportEntry struct {
	Merchant string `json:"merchant"`
	Total    string `json:"total"`
	Count    int64  `json:"count"`
}

// MonthlyReportEntry is one month bucket of the trailing-year report
type MonthlyReportEntry struct {
	Month string `json:"month"`
	Total string `json:"total"`
	Count int64  `json:"count"`
}

// SummaryResponse holds the dashboard headline numbers
type SummaryResponse struct {
	TotalSpent       string `json:"totalSpent"`
	AverageAmount    string `json:"averageAmount"`
	LargestExpense   string `json:"largestExpense"`
	TransactionCount int64  `json:"transactionCount"`
}
