package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRenameIntoOther     = errors.New("categories cannot be renamed into 'other'")
	ErrPropagationNotFound = errors.New("transaction not found")
)

// propagationService implements PropagationServiceInterface. Bulk category
// changes touch both the transactions table and the learned pattern table,
// so every operation runs inside one database transaction.
type propagationService struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPropagationService creates a new propagation service
func NewPropagationService(db *gorm.DB, logger *slog.Logger) PropagationServiceInterface {
	return &propagationService{
		db:     db,
		logger: logger,
	}
}

// UpdateTransactionCategory recategorizes one transaction and learns from
// the edit. With applyToSimilar, the category also propagates to every
// transaction of the user whose description contains the edited one.
func (s *propagationService) UpdateTransactionCategory(userID, transactionID uuid.UUID, category string, applyToSimilar bool) (int64, error) {
	var updated int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactionRepo := repositories.NewTransactionRepository(tx)
		patternRepo := repositories.NewLearnedPatternRepository(tx)

		transaction, err := transactionRepo.GetByID(transactionID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrTransactionNotFound) {
				return ErrPropagationNotFound
			}
			return err
		}

		// "other" is a fallback, not a label worth spreading: bulk-writing
		// it would erase categorization signal across the ledger, so the
		// edit degrades to the single row.
		if applyToSimilar && !models.IsOther(category) {
			n, err := transactionRepo.UpdateLearnedCategoryForSimilar(userID, transaction.Description, category)
			if err != nil {
				return err
			}
			updated = n
		} else {
			if err := transactionRepo.SetLearnedCategory(transactionID, userID, category); err != nil {
				return err
			}
			updated = 1
		}

		// Manual edits are the strongest signal short of a bulk rename;
		// learn the pattern even for a single-transaction edit.
		if !models.IsOther(category) {
			pattern := &models.LearnedPattern{
				UserID:     userID,
				Pattern:    NormalizePattern(transaction.Description),
				Category:   category,
				Confidence: models.ConfidenceManualEdit,
			}
			if err := patternRepo.Upsert(pattern); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("transaction category updated",
		"user_id", userID,
		"transaction_id", transactionID,
		"category", category,
		"apply_to_similar", applyToSimilar,
		"updated", updated)

	return updated, nil
}

// RenameCategory moves every transaction of the user whose effective
// category is oldCategory over to newCategory, rewrites the user's learned
// patterns, and re-learns one pattern per affected description. "other"
// is not a real destination: renames into it are refused.
func (s *propagationService) RenameCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error) {
	if models.IsOther(newCategory) {
		return 0, ErrRenameIntoOther
	}
	if oldCategory == newCategory {
		return 0, nil
	}

	var updated int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		transactionRepo := repositories.NewTransactionRepository(tx)
		patternRepo := repositories.NewLearnedPatternRepository(tx)

		descriptions, err := transactionRepo.DistinctDescriptionsByCategory(userID, oldCategory)
		if err != nil {
			return err
		}

		n, err := transactionRepo.ReassignCategory(userID, oldCategory, newCategory)
		if err != nil {
			return err
		}
		updated = n

		if _, err := patternRepo.RenameCategory(userID, oldCategory, newCategory); err != nil {
			return err
		}

		for _, description := range descriptions {
			pattern := &models.LearnedPattern{
				UserID:     userID,
				Pattern:    NormalizePattern(description),
				Category:   newCategory,
				Confidence: models.ConfidenceBulkRename,
			}
			if err := patternRepo.Upsert(pattern); err != nil {
				return fmt.Errorf("failed to learn pattern for %q: %w", description, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("category renamed",
		"user_id", userID,
		"old_category", oldCategory,
		"new_category", newCategory,
		"updated", updated)

	return updated, nil
}

// CountSimilar previews a propagation: it counts the user's transactions
// with exactly this description, so the UI can warn before a bulk edit.
func (s *propagationService) CountSimilar(userID uuid.UUID, description string) (int64, error) {
	transactionRepo := repositories.NewTransactionRepository(s.db)
	return transactionRepo.CountSimilar(userID, description)
}
