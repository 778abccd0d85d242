package dto

// CreateCreditCardRequest registers a credit card
type CreateCreditCardRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	LastFour string `json:"lastFour" validate:"required,len=4,numeric"`
}

// UpdateCreditCardRequest edits a credit card
type UpdateCreditCardRequest struct {
	Name     string `json:"name" validate:"omitempty,min=1,max=100"`
	LastFour string `json:"lastFour" validate:"omitempty,len=4,numeric"`
}

// CreditCardResponse is the wire form of a credit card
type CreditCardResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastFour string `json:"lastFour"`
}
