package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	GetByID(id, userID uuid.UUID) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetByDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id, userID uuid.UUID) error
	DeleteAllForUser(userID uuid.UUID) (int64, error)

	// Categorization support. Peer lookups deliberately cross user
	// boundaries: the suggestion engine learns from the whole corpus.
	FindPeersByDescription(description string, limit int) ([]models.Transaction, error)
	SetLearnedCategory(id, userID uuid.UUID, category string) error
	CountSimilar(userID uuid.UUID, description string) (int64, error)
	UpdateLearnedCategoryForSimilar(userID uuid.UUID, description, category string) (int64, error)
	ReassignCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error)
	DistinctDescriptionsByCategory(userID uuid.UUID, category string) ([]string, error)
	SetRecurringByDescription(userID uuid.UUID, description string, recurring bool) (int64, error)

	// Aggregation
	GetCategoryTotals(userID uuid.UUID, startDate, endDate *time.Time) ([]models.CategoryTotal, error)
	GetMerchantTotals(userID uuid.UUID, limit int) ([]models.MerchantTotal, error)
	GetSpendingSummary(userID uuid.UUID, startDate, endDate *time.Time) (*models.SpendingSummary, error)
}

// LearnedPatternRepositoryInterface defines the contract for learned pattern repository operations
type LearnedPatternRepositoryInterface interface {
	Upsert(pattern *models.LearnedPattern) error
	GetBestMatch(userID uuid.UUID, pattern string) (*models.LearnedPattern, error)
	RenameCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error)
	ListByUser(userID uuid.UUID) ([]models.LearnedPattern, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id string, userID uuid.UUID) (*models.Category, error)
	ListForUser(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id string, userID uuid.UUID) error
	GetSystemCategories() ([]models.Category, error)
	SaveSystemCategories(categories []models.Category) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id, userID uuid.UUID) (*models.Budget, error)
	ListByUser(userID uuid.UUID) ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id, userID uuid.UUID) error
}

// CreditCardRepositoryInterface defines the contract for credit card repository operations
type CreditCardRepositoryInterface interface {
	Create(card *models.CreditCard) error
	GetByID(id, userID uuid.UUID) (*models.CreditCard, error)
	ListByUser(userID uuid.UUID) ([]models.CreditCard, error)
	Update(card *models.CreditCard) error
	Delete(id, userID uuid.UUID) error
	CountTransactions(cardID uuid.UUID) (int64, error)
}

// ReceiptRepositoryInterface defines the contract for receipt repository operations
type ReceiptRepositoryInterface interface {
	Create(receipt *models.Receipt) error
	GetByID(id, userID uuid.UUID) (*models.Receipt, error)
	ListByUser(userID uuid.UUID) ([]models.Receipt, error)
	Update(receipt *models.Receipt) error
	Delete(id, userID uuid.UUID) error
	LinkTransaction(id, userID, transactionID uuid.UUID) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	Delete(userID uuid.UUID) error
}

// RefreshTokenRepositoryInterface defines the contract for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}
