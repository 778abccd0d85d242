package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash       = "cash"
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodUnknown    = "unknown"
)

// MerchantDelimiter separates the merchant prefix from the rest of a
// statement line, e.g. "UBER - TRIP 12345".
const MerchantDelimiter = " - "

var (
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrCreditCardIDRequired  = errors.New("credit card id is required for credit card payments")
	ErrDescriptionRequired   = errors.New("transaction description is required")
	ErrUserIDRequired        = errors.New("transaction user id is required")
)

// Transaction is one ledger entry. Expenses carry a negative amount and
// refunds a positive one; the sign convention is enforced at the API
// boundary, not by the storage layer.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"userid"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category        string          `gorm:"type:varchar(64);not null;index" json:"category"`
	LearnedCategory string          `gorm:"type:varchar(64)" json:"learned_category,omitempty"`
	Merchant        string          `gorm:"type:varchar(255)" json:"merchant,omitempty"`
	IsRecurring     bool            `gorm:"not null;default:false" json:"is_recurring"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null;default:'unknown'" json:"payment_method"`
	CreditCardID    *uuid.UUID      `gorm:"type:uuid" json:"credit_card_id,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.PaymentMethod == "" {
		t.PaymentMethod = PaymentMethodUnknown
	}

	if t.Category == "" {
		t.Category = CategoryOther
	}

	t.Merchant = DeriveMerchant(t.Description)

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrUserIDRequired
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrDescriptionRequired
	}

	if !IsValidPaymentMethod(t.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}

	if t.PaymentMethod == PaymentMethodCreditCard && (t.CreditCardID == nil || *t.CreditCardID == uuid.Nil) {
		return ErrCreditCardIDRequired
	}

	return nil
}

// EffectiveCategory prefers the learned category when a propagation has
// written one, preserving the original assignment for audit.
func (t *Transaction) EffectiveCategory() string {
	if t.LearnedCategory != "" {
		return t.LearnedCategory
	}
	return t.Category
}

// MerchantOrDescription is the grouping key used by merchant aggregation.
func (t *Transaction) MerchantOrDescription() string {
	if t.Merchant != "" {
		return t.Merchant
	}
	return t.Description
}

// AbsAmount returns the magnitude of the transaction amount.
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// DeriveMerchant extracts the merchant label from a statement line: the
// substring before the first " - " delimiter, else the full description.
func DeriveMerchant(description string) string {
	description = strings.TrimSpace(description)
	if idx := strings.Index(description, MerchantDelimiter); idx > 0 {
		return strings.TrimSpace(description[:idx])
	}
	return description
}

// IsValidPaymentMethod checks if the payment method is valid
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodUnknown:
		return true
	default:
		return false
	}
}
