package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Suggestion sources returned by the categorizer, in lookup order.
const (
	SuggestionSourceLearned  = "learned"
	SuggestionSourceHistory  = "history"
	SuggestionSourceKeyword  = "keyword"
	SuggestionSourceFallback = "fallback"
)

// CategorizerServiceInterface defines the category suggestion engine
type CategorizerServiceInterface interface {
	// Suggest returns a category for a description. It never returns
	// "other": when nothing matches, the fallback category is returned
	// with source "fallback".
	Suggest(userID uuid.UUID, description string) (category string, source string)

	// CategorizeForImport is the statement ingestion variant: when no
	// tier matches it falls back to "other" so unrecognized rows stay
	// visibly uncategorized.
	CategorizeForImport(userID uuid.UUID, description string) string

	// KeywordCategory matches a description against the built-in keyword
	// table only.
	KeywordCategory(description string) (category string, ok bool)
}

// UploadedFile is one statement file received in an upload request
type UploadedFile struct {
	Name string
	Data []byte
}

// StatementServiceInterface defines the statement ingestion pipeline
type StatementServiceInterface interface {
	// ProcessUploads imports the given statement files for a user. Files
	// fail independently: a broken file reports an error in its result
	// while the rest import.
	ProcessUploads(userID uuid.UUID, files []UploadedFile) (*dto.UploadResponse, error)
}

// PropagationServiceInterface defines bulk category changes
type PropagationServiceInterface interface {
	// UpdateTransactionCategory recategorizes one transaction, learns the
	// pattern, and optionally pushes the category to every similar
	// transaction of the user. Returns how many transactions changed.
	UpdateTransactionCategory(userID, transactionID uuid.UUID, category string, applyToSimilar bool) (int64, error)

	// RenameCategory moves every transaction and learned pattern of the
	// user from oldCategory to newCategory. Renames into "other" are
	// refused.
	RenameCategory(userID uuid.UUID, oldCategory, newCategory string) (int64, error)

	// CountSimilar reports how many of the user's transactions carry the
	// exact description, as a preview before an apply-to-similar edit.
	CountSimilar(userID uuid.UUID, description string) (int64, error)
}

// AggregationServiceInterface defines spending reports
type AggregationServiceInterface interface {
	CategoryTotals(userID uuid.UUID, startDate, endDate *time.Time) ([]models.CategoryTotal, error)
	MerchantTotals(userID uuid.UUID, limit int) ([]models.MerchantTotal, error)
	MonthlyTotals(userID uuid.UUID, now time.Time) ([]models.MonthlyTotal, error)
	Summary(userID uuid.UUID, startDate, endDate *time.Time) (*models.SpendingSummary, error)
	SpentForBudget(userID uuid.UUID, budget *models.Budget, now time.Time) (decimal.Decimal, error)
}

// ReceiptExtractionServiceInterface mines transaction fields out of OCR text
type ReceiptExtractionServiceInterface interface {
	Extract(ocrText string) *dto.ReceiptExtractionResponse
}

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	Logout(refreshToken string) error
}

// TokenServiceInterface defines JWT operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

// PasswordServiceInterface defines password hashing and validation
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// MetricsRecorderInterface abstracts the metrics backend
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// SeedGeneratorInterface generates realistic demo data for development
type SeedGeneratorInterface interface {
	GenerateTransactions(userID uuid.UUID, count int) []models.Transaction
	SeedDemoData(userID uuid.UUID, transactionCount int) error
}
