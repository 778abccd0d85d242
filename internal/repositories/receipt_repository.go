package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
)

// receiptRepository implements ReceiptRepositoryInterface
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepositoryInterface {
	return &receiptRepository{
		db: db,
	}
}

// Create creates a new receipt
func (r *receiptRepository) Create(receipt *models.Receipt) error {
	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// GetByID retrieves a receipt scoped to its owner
func (r *receiptRepository) GetByID(id, userID uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &receipt, nil
}

// ListByUser returns all receipts of a user
func (r *receiptRepository) ListByUser(userID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

// Update persists changes to a receipt
func (r *receiptRepository) Update(receipt *models.Receipt) error {
	result := r.db.Model(&models.Receipt{}).
		Where("id = ? AND user_id = ?", receipt.ID, receipt.UserID).
		Updates(receipt)

	if result.Error != nil {
		return fmt.Errorf("failed to update receipt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReceiptNotFound
	}
	return nil
}

// Delete removes a receipt scoped to its owner
func (r *receiptRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Receipt{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete receipt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReceiptNotFound
	}
	return nil
}

// LinkTransaction attaches a receipt to a transaction
func (r *receiptRepository) LinkTransaction(id, userID, transactionID uuid.UUID) error {
	result := r.db.Model(&models.Receipt{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("transaction_id", transactionID)

	if result.Error != nil {
		return fmt.Errorf("failed to link receipt to transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReceiptNotFound
	}
	return nil
}
