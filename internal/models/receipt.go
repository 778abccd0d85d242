package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt is an uploaded image plus the raw text an external OCR engine
// extracted from it, optionally linked to the transaction it was turned into.
type Receipt struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"userid"`
	FileName      string     `gorm:"type:varchar(255);not null" json:"file_name"`
	StoragePath   string     `gorm:"type:text;not null" json:"storage_path"`
	OCRText       string     `gorm:"column:ocr_text;type:text" json:"ocr_text,omitempty"`
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transaction_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return nil
}

// TableName returns the table name for Receipt
func (r *Receipt) TableName() string {
	return "receipts"
}
