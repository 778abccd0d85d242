package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLearnedPatternNotFound = errors.New("learned pattern not found")
)

// learnedPatternRepository implements LearnedPatternRepositoryInterface
type learnedPatternRepository struct {
	db *gorm.DB
}

// NewLearnedPatternRepository creates a new learned pattern repository
func NewLearnedPatternRepository(db *gorm.DB) LearnedPatternRepositoryInterface {
	return &learnedPatternRepository{
		db: db,
	}
}

// Upsert writes a pattern, replacing the category and confidence of an
// existing row for the same (user, pattern) pair. Last write wins.
func (r *learnedPatternRepository) Upsert(pattern *models.LearnedPattern) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "pattern"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"category":   pattern.Category,
			"confidence": pattern.Confidence,
			"updated_at": time.Now(),
		}),
	}).Create(pattern).Error; err != nil {
		return fmt.Errorf("failed to upsert learned pattern: %w", err)
	}
	return nil
}

// GetBestMatch returns the user's highest-confidence pattern for an exact
// normalized description. Patterns pointing at "other" are never returned:
// the engine treats them as unlearned.
func (r *learnedPatternRepository) GetBestMatch(userID uuid.UUID, pattern string) (*models.LearnedPattern, error) {
	var match models.LearnedPattern
	if err := r.db.Where("user_id = ? AND pattern = ? AND category != ?",
		userID, pattern, models.CategoryOther).
		Order("confidence DESC").
		First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearnedPatternNotFound
		}
		return nil, fmt.Errorf("failed to get learned pattern: %w", err)
	}
	return &match, nil
}

// RenameCategory moves every pattern of the user from oldCategory to newCategory
func (r *learnedPatternRepository) RenameCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error) {
	result := r.db.Model(&models.LearnedPattern{}).
		Where("user_id = ? AND category = ?", userID, oldCategory).
		Updates(map[string]interface{}{
			"category":   newCategory,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to rename pattern category: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListByUser returns all learned patterns of a user
func (r *learnedPatternRepository) ListByUser(userID uuid.UUID) ([]models.LearnedPattern, error) {
	var patterns []models.LearnedPattern
	if err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("failed to list learned patterns: %w", err)
	}
	return patterns, nil
}
