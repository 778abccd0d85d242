package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCreditCardNotFound = errors.New("credit card not found")
)

// creditCardRepository implements CreditCardRepositoryInterface
type creditCardRepository struct {
	db *gorm.DB
}

// NewCreditCardRepository creates a new credit card repository
func NewCreditCardRepository(db *gorm.DB) CreditCardRepositoryInterface {
	return &creditCardRepository{
		db: db,
	}
}

// Create creates a new credit card
func (r *creditCardRepository) Create(card *models.CreditCard) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}

// GetByID retrieves a credit card scoped to its owner
func (r *creditCardRepository) GetByID(id, userID uuid.UUID) (*models.CreditCard, error) {
	var card models.CreditCard
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditCardNotFound
		}
		return nil, fmt.Errorf("failed to get credit card: %w", err)
	}
	return &card, nil
}

// ListByUser returns all credit cards of a user
func (r *creditCardRepository) ListByUser(userID uuid.UUID) ([]models.CreditCard, error) {
	var cards []models.CreditCard
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	return cards, nil
}

// Update persists changes to a credit card
func (r *creditCardRepository) Update(card *models.CreditCard) error {
	result := r.db.Model(&models.CreditCard{}).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Updates(map[string]interface{}{
			"name":      card.Name,
			"last_four": card.LastFour,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update credit card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCreditCardNotFound
	}
	return nil
}

// Delete removes a credit card scoped to its owner
func (r *creditCardRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CreditCard{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete credit card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCreditCardNotFound
	}
	return nil
}

// CountTransactions counts the transactions referencing a card
func (r *creditCardRepository) CountTransactions(cardID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("credit_card_id = ?", cardID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count card transactions: %w", err)
	}
	return count, nil
}
