package models

import (
	"time"

	"gorm.io/gorm"
)

// Well-known system setting keys.
const (
	SettingKeySystemCategories = "system_categories"
)

// SystemSetting is a generic key-value store for admin-level configuration.
// Values are raw JSON documents; callers own the schema per key.
type SystemSetting struct {
	Key       string    `gorm:"type:varchar(100);primary_key" json:"key"`
	Value     string    `gorm:"type:jsonb;not null;default:'{}'" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeSave hook for SystemSetting
func (s *SystemSetting) BeforeSave(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

// TableName returns the table name for SystemSetting
func (s *SystemSetting) TableName() string {
	return "system_settings"
}
