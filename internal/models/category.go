package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Built-in category identifiers shared by all users.
const (
	CategoryGroceries      = "groceries"
	CategoryDining         = "dining"
	CategoryEntertainment  = "entertainment"
	CategoryTransportation = "transportation"
	CategoryShopping       = "shopping"
	CategoryTravel         = "travel"
	CategoryHousing        = "housing"
	CategoryUtilities      = "utilities"
	CategoryHealthcare     = "healthcare"
	CategoryEducation      = "education"
	CategoryGifts          = "gifts"
	CategoryServices       = "services"
	CategorySubscriptions  = "subscriptions"
	CategoryOther          = "other"
)

// Identifier prefixes for non-built-in categories. User-created categories
// carry the "custom-" prefix and are the only ones a user may delete;
// admin-defined categories carry "system-" and live in the settings store.
const (
	CustomCategoryPrefix = "custom-"
	SystemCategoryPrefix = "system-"
)

// Category is a label with a display color. Built-in categories have no
// database row; custom categories are stored per user.
type Category struct {
	ID        string     `gorm:"type:varchar(64);primary_key" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"userid,omitempty"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Color     string     `gorm:"type:varchar(16);not null" json:"color"`
	Icon      string     `gorm:"type:varchar(40)" json:"icon,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = CustomCategoryPrefix + uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsUserDeletable reports whether an end user may delete this category.
// Built-in and admin-defined categories are off limits.
func (c *Category) IsUserDeletable() bool {
	return strings.HasPrefix(c.ID, CustomCategoryPrefix)
}

// IsOther is the single predicate for the "other"-is-special convention:
// the engine never suggests it, renames into it are refused, and it is
// excluded from every tally.
func IsOther(categoryID string) bool {
	return categoryID == CategoryOther
}

// BuiltinCategories returns the fixed category set every user starts with.
// These are immutable: they can never be deleted or renamed by end users.
func BuiltinCategories() []Category {
	return []Category{
		{ID: CategoryGroceries, Name: "Groceries", Color: "#10B981", Icon: "ShoppingCart"},
		{ID: CategoryDining, Name: "Dining Out", Color: "#F59E0B", Icon: "Utensils"},
		{ID: CategoryEntertainment, Name: "Entertainment", Color: "#8B5CF6", Icon: "BarChart2"},
		{ID: CategoryTransportation, Name: "Transportation", Color: "#3B82F6", Icon: "Car"},
		{ID: CategoryShopping, Name: "Shopping", Color: "#EC4899", Icon: "ShoppingCart"},
		{ID: CategoryTravel, Name: "Travel", Color: "#06B6D4", Icon: "Plane"},
		{ID: CategoryHousing, Name: "Housing", Color: "#6366F1", Icon: "Home"},
		{ID: CategoryUtilities, Name: "Utilities", Color: "#D97706", Icon: "Home"},
		{ID: CategoryHealthcare, Name: "Healthcare", Color: "#EF4444", Icon: "Heart"},
		{ID: CategoryEducation, Name: "Education", Color: "#0EA5E9", Icon: "BookOpen"},
		{ID: CategoryGifts, Name: "Gifts", Color: "#F472B6", Icon: "Gift"},
		{ID: CategoryServices, Name: "Services", Color: "#71717A", Icon: "Wrench"},
		{ID: CategorySubscriptions, Name: "Subscriptions", Color: "#9333EA", Icon: "CreditCard"},
		{ID: CategoryOther, Name: "Other", Color: "#9CA3AF", Icon: "Globe"},
	}
}

// IsBuiltinCategory checks whether the identifier belongs to the fixed set.
func IsBuiltinCategory(categoryID string) bool {
	for _, c := range BuiltinCategories() {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
