package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Confidence scores written on each learn path. The score is stored but no
// read path currently filters or ranks by it beyond tier-1 ordering; it is
// kept for a future ranking feature.
const (
	ConfidenceAutoLearned = 0.7
	ConfidenceManualEdit  = 0.8
	ConfidenceBulkRename  = 0.9
)

// LearnedPattern caches a (user, description) -> category assignment so the
// categorizer can answer repeat descriptions without touching peer history.
// One row per (user_id, pattern); conflicting writes upsert.
type LearnedPattern struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learned_patterns_user_pattern" json:"userid"`
	Pattern    string    `gorm:"type:text;not null;uniqueIndex:idx_learned_patterns_user_pattern" json:"pattern"`
	Category   string    `gorm:"type:varchar(64);not null;index" json:"category"`
	Confidence float64   `gorm:"type:decimal(3,2);not null" json:"confidence"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for LearnedPattern
func (p *LearnedPattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

// TableName returns the table name for LearnedPattern
func (p *LearnedPattern) TableName() string {
	return "learned_patterns"
}
