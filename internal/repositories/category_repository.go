package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a custom category for a user
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category visible to the user: a built-in, one of the
// user's custom categories, or an admin-defined system category
func (r *categoryRepository) GetByID(id string, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ? AND (user_id IS NULL OR user_id = ?)", id, userID).
		First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	systemCategories, sysErr := r.GetSystemCategories()
	if sysErr != nil {
		return nil, sysErr
	}
	for i := range systemCategories {
		if systemCategories[i].ID == id {
			return &systemCategories[i], nil
		}
	}

	return nil, ErrCategoryNotFound
}

// ListForUser returns the categories visible to a user: the built-in set,
// admin-defined system categories, and the user's own custom ones
func (r *categoryRepository) ListForUser(userID uuid.UUID) ([]models.Category, error) {
	var stored []models.Category
	if err := r.db.Where("user_id IS NULL OR user_id = ?", userID).
		Order("created_at ASC").
		Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	systemCategories, err := r.GetSystemCategories()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stored))
	for _, c := range stored {
		seen[c.ID] = true
	}

	for _, c := range systemCategories {
		if !seen[c.ID] {
			stored = append(stored, c)
		}
	}

	return stored, nil
}

// Update persists changes to a category
func (r *categoryRepository) Update(category *models.Category) error {
	result := r.db.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"color": category.Color,
			"icon":  category.Icon,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes one of the user's custom categories
func (r *categoryRepository) Delete(id string, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// GetSystemCategories loads the admin-defined category set from the
// settings store. A missing setting means no system categories exist.
func (r *categoryRepository) GetSystemCategories() ([]models.Category, error) {
	var setting models.SystemSetting
	if err := r.db.Where("key = ?", models.SettingKeySystemCategories).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load system categories: %w", err)
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(setting.Value), &categories); err != nil {
		return nil, fmt.Errorf("failed to decode system categories: %w", err)
	}

	return categories, nil
}

// SaveSystemCategories replaces the admin-defined category set
func (r *categoryRepository) SaveSystemCategories(categories []models.Category) error {
	value, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode system categories: %w", err)
	}

	setting := models.SystemSetting{
		Key:   models.SettingKeySystemCategories,
		Value: string(value),
	}

	if err := r.db.Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to save system categories: %w", err)
	}
	return nil
}
