package dto

import "time"

// CreateTransactionRequest contains the fields of a manually entered transaction
type CreateTransactionRequest struct {
	Date          string `json:"date" validate:"required"`
	Description   string `json:"description" validate:"required,min=1,max=500"`
	Amount        string `json:"amount" validate:"required"`
	Category      string `json:"category" validate:"omitempty,category_id"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,payment_method"`
	CreditCardID  string `json:"creditCardId" validate:"omitempty,uuid"`
	IsRecurring   bool   `json:"isRecurring"`
}

// UpdateTransactionRequest contains mutable transaction fields
type UpdateTransactionRequest struct {
	Date          string `json:"date"`
	Description   string `json:"description" validate:"omitempty,min=1,max=500"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,payment_method"`
	CreditCardID  string `json:"creditCardId" validate:"omitempty,uuid"`
	IsRecurring   *bool  `json:"isRecurring"`
}

// UpdateCategoryRequest recategorizes a transaction, optionally pushing the
// new category to every similar transaction of the user
type UpdateCategoryRequest struct {
	Category       string `json:"category" validate:"required,category_id"`
	ApplyToSimilar bool   `json:"applyToSimilar"`
}

// SetRecurringRequest flags every transaction matching a description as recurring
type SetRecurringRequest struct {
	Description string `json:"description" validate:"required"`
	IsRecurring bool   `json:"isRecurring"`
}

// ListTransactionsQuery contains filtering options for transaction queries
type ListTransactionsQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Category  string `query:"category"`
	Merchant  string `query:"merchant"`
	MinAmount string `query:"minAmount"`
	MaxAmount string `query:"maxAmount"`
	Offset    int    `query:"offset"`
	Limit     int    `query:"limit"`
}

// TransactionResponse is the wire form of a transaction
type TransactionResponse struct {
	ID                string    `json:"id"`
	Date              time.Time `json:"date"`
	Description       string    `json:"description"`
	Amount            string    `json:"amount"`
	Category          string    `json:"category"`
	LearnedCategory   string    `json:"learnedCategory,omitempty"`
	EffectiveCategory string    `json:"effectiveCategory"`
	Merchant          string    `json:"merchant,omitempty"`
	IsRecurring       bool      `json:"isRecurring"`
	PaymentMethod     string    `json:"paymentMethod"`
	CreditCardID      string    `json:"creditCardId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Offset       int                   `json:"offset"`
	Limit        int                   `json:"limit"`
}

// SimilarCountResponse reports how many transactions a propagation would touch
type SimilarCountResponse struct {
	Description string `json:"description"`
	Count       int64  `json:"count"`
}

// PropagationResponse reports the outcome of a bulk category change
type PropagationResponse struct {
	Updated int64 `json:"updated"`
}
