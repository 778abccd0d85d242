package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// effectiveCategoryExpr resolves the category a transaction counts under:
// a propagated learned category wins over the original assignment.
const effectiveCategoryExpr = "COALESCE(NULLIF(learned_category, ''), category)"

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to create batch transactions: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a transaction scoped to its owner
func (r *transactionRepository) GetByID(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetWithFilters retrieves a user's transactions with optional filters
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filters.UserID)

	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}
	if filters.Category != "" {
		query = query.Where(effectiveCategoryExpr+" = ?", filters.Category)
	}
	if filters.Merchant != "" {
		query = query.Where("LOWER(merchant) LIKE LOWER(?)", "%"+filters.Merchant+"%")
	}
	if filters.MinAmount != nil {
		query = query.Where("ABS(amount) >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("ABS(amount) <= ?", *filters.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	query = query.Order("date DESC, created_at DESC")
	if filters.Limit > 0 {
		query = query.Offset(filters.Offset).Limit(filters.Limit)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// GetByDateRange retrieves a user's transactions within a date range
func (r *transactionRepository) GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, startDate, endDate).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// Update persists changes to a transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(transaction)

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction scoped to its owner
func (r *transactionRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteAllForUser wipes a user's entire ledger
func (r *transactionRepository) DeleteAllForUser(userID uuid.UUID) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transactions for user: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FindPeersByDescription finds the newest transactions across all users
// whose description contains the given text. Used by the suggestion
// engine to learn from how the community categorized the same merchant.
func (r *transactionRepository) FindPeersByDescription(description string, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("LOWER(description) LIKE LOWER(?)", "%"+description+"%").
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find peer transactions: %w", err)
	}
	return transactions, nil
}

// SetLearnedCategory overrides a transaction's effective category
func (r *transactionRepository) SetLearnedCategory(id, userID uuid.UUID, category string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"learned_category": category,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set learned category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// CountSimilar counts the user's transactions sharing the exact description.
// The propagation write itself matches by substring; the preview count stays
// exact so the number shown is never an overestimate of identical rows.
func (r *transactionRepository) CountSimilar(userID uuid.UUID, description string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND description = ?", userID, description).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count similar transactions: %w", err)
	}
	return count, nil
}

// UpdateLearnedCategoryForSimilar applies a category to every transaction
// of the user whose description contains the given text
func (r *transactionRepository) UpdateLearnedCategoryForSimilar(userID uuid.UUID, description, category string) (int64, error) {
	result := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND LOWER(description) LIKE LOWER(?)", userID, "%"+description+"%").
		Updates(map[string]interface{}{
			"learned_category": category,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to update similar transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ReassignCategory moves every transaction whose effective category matches
// oldCategory to newCategory, writing the override into learned_category so
// the original assignment stays auditable
func (r *transactionRepository) ReassignCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error) {
	result := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND "+effectiveCategoryExpr+" = ?", userID, oldCategory).
		Updates(map[string]interface{}{
			"learned_category": newCategory,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to reassign category: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DistinctDescriptionsByCategory lists the distinct descriptions of a
// user's transactions under an effective category
func (r *transactionRepository) DistinctDescriptionsByCategory(userID uuid.UUID, category string) ([]string, error) {
	var descriptions []string
	if err := r.db.Model(&models.Transaction{}).
		Distinct("description").
		Where("user_id = ? AND "+effectiveCategoryExpr+" = ?", userID, category).
		Pluck("description", &descriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list descriptions by category: %w", err)
	}
	return descriptions, nil
}

// SetRecurringByDescription flags every transaction of the user with an
// exactly matching description as recurring (or not)
func (r *transactionRepository) SetRecurringByDescription(userID uuid.UUID, description string, recurring bool) (int64, error) {
	result := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND description = ?", userID, description).
		Updates(map[string]interface{}{
			"is_recurring": recurring,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to update recurring flag: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// GetCategoryTotals sums transaction magnitudes grouped by effective category
func (r *transactionRepository) GetCategoryTotals(userID uuid.UUID, startDate, endDate *time.Time) ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal

	query := r.db.Model(&models.Transaction{}).
		Select(effectiveCategoryExpr+" as category, COALESCE(SUM(ABS(amount)), 0) as total, COUNT(*) as count").
		Where("user_id = ?", userID)

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	if err := query.Group(effectiveCategoryExpr).
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	return totals, nil
}

// GetMerchantTotals sums transaction magnitudes grouped by merchant
func (r *transactionRepository) GetMerchantTotals(userID uuid.UUID, limit int) ([]models.MerchantTotal, error) {
	var totals []models.MerchantTotal

	query := r.db.Model(&models.Transaction{}).
		Select("merchant, COALESCE(SUM(ABS(amount)), 0) as total, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("merchant").
		Order("total DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to get merchant totals: %w", err)
	}

	return totals, nil
}

// GetSpendingSummary computes the headline numbers for a user's dashboard
func (r *transactionRepository) GetSpendingSummary(userID uuid.UUID, startDate, endDate *time.Time) (*models.SpendingSummary, error) {
	var result struct {
		Total   string
		Largest string
		Count   int64
	}

	query := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(ABS(amount)), 0) as total, COALESCE(MAX(ABS(amount)), 0) as largest, COUNT(*) as count").
		Where("user_id = ?", userID)

	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	if err := query.Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to get spending summary: %w", err)
	}

	summary := &models.SpendingSummary{TransactionCount: result.Count}

	total, err := decimalFromSQL(result.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total spent: %w", err)
	}
	summary.TotalSpent = total

	largest, err := decimalFromSQL(result.Largest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse largest expense: %w", err)
	}
	summary.LargestExpense = largest

	// Average over at least one transaction so an empty ledger yields zero
	// instead of a division error.
	divisor := result.Count
	if divisor == 0 {
		divisor = 1
	}
	summary.AverageAmount = summary.TotalSpent.DivRound(decimalFromInt(divisor), 2)

	return summary, nil
}
