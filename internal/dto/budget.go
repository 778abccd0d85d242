package dto

// CreateBudgetRequest creates a spending budget for a category
type CreateBudgetRequest struct {
	Category  string `json:"category" validate:"required,category_id"`
	Amount    string `json:"amount" validate:"required"`
	Period    string `json:"period" validate:"required,budget_period"`
	StartDate string `json:"startDate" validate:"required"`
}

// UpdateBudgetRequest edits a budget
type UpdateBudgetRequest struct {
	Amount    string `json:"amount"`
	Period    string `json:"period" validate:"omitempty,budget_period"`
	StartDate string `json:"startDate"`
}

// BudgetResponse is the wire form of a budget, including how much of it
// the current period has consumed
type BudgetResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Period    string `json:"period"`
	StartDate string `json:"startDate"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
}
