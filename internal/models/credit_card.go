package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditCard is a user-owned payment instrument label referenced by
// transactions. No balance or limit modeling.
type CreditCard struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userid"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	LastFour  string    `gorm:"type:varchar(4)" json:"last_four,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for CreditCard
func (cc *CreditCard) BeforeCreate(tx *gorm.DB) error {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	if cc.CreatedAt.IsZero() {
		cc.CreatedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for CreditCard
func (cc *CreditCard) TableName() string {
	return "credit_cards"
}
