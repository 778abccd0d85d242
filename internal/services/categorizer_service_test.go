package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CategorizerServiceTestSuite struct {
	suite.Suite
	db          *database.DB
	user        *models.User
	peer        *models.User
	service     CategorizerServiceInterface
	patternRepo repositories.LearnedPatternRepositoryInterface
}

func (s *CategorizerServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "user@example.com")
	s.peer = database.CreateTestUser(s.T(), s.db, "peer@example.com")

	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	s.patternRepo = repositories.NewLearnedPatternRepository(s.db.DB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewCategorizerService(transactionRepo, s.patternRepo, logger)
}

func (s *CategorizerServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategorizerServiceTestSuite) createTransaction(userID uuid.UUID, description, category string, date time.Time) {
	transaction := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromInt(-100),
		Category:    category,
	}
	s.Require().NoError(s.db.Create(transaction).Error)
}

func (s *CategorizerServiceTestSuite) TestSuggestUsesLearnedPattern() {
	s.Require().NoError(s.patternRepo.Upsert(&models.LearnedPattern{
		UserID:     s.user.ID,
		Pattern:    "acme widgets llc",
		Category:   models.CategoryUtilities,
		Confidence: models.ConfidenceManualEdit,
	}))

	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")

	s.Equal(models.CategoryUtilities, category)
	s.Equal(SuggestionSourceLearned, source)
}

func (s *CategorizerServiceTestSuite) TestSuggestUsesPeerHistory() {
	now := time.Now()
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryUtilities, now)
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryUtilities, now.AddDate(0, 0, -1))
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryGroceries, now.AddDate(0, 0, -2))

	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")

	s.Equal(models.CategoryUtilities, category)
	s.Equal(SuggestionSourceHistory, source)
}

func (s *CategorizerServiceTestSuite) TestSuggestCachesPeerResultAsPattern() {
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryUtilities, time.Now())

	_, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")
	s.Equal(SuggestionSourceHistory, source)

	match, err := s.patternRepo.GetBestMatch(s.user.ID, "acme widgets llc")
	s.Require().NoError(err)
	s.Equal(models.CategoryUtilities, match.Category)
	s.InDelta(models.ConfidenceAutoLearned, match.Confidence, 0.001)

	// The next suggestion resolves from the cached pattern.
	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")
	s.Equal(models.CategoryUtilities, category)
	s.Equal(SuggestionSourceLearned, source)
}

func (s *CategorizerServiceTestSuite) TestSuggestPeerTieBreaksTowardNewest() {
	now := time.Now()
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryUtilities, now)
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryGroceries, now.AddDate(0, 0, -5))

	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")

	s.Equal(models.CategoryUtilities, category)
	s.Equal(SuggestionSourceHistory, source)
}

func (s *CategorizerServiceTestSuite) TestSuggestIgnoresPeersCategorizedAsOther() {
	s.createTransaction(s.peer.ID, "ACME WIDGETS LLC", models.CategoryOther, time.Now())

	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")

	s.Equal(models.CategoryShopping, category)
	s.Equal(SuggestionSourceFallback, source)
}

func (s *CategorizerServiceTestSuite) TestSuggestUsesKeywordTable() {
	testCases := []struct {
		description string
		expected    string
	}{
		{"WALMART SUPERCENTER - STORE 2612", models.CategoryGroceries},
		{"UBER - TRIP 48213", models.CategoryTransportation},
		{"NETFLIX.COM", models.CategoryEntertainment},
		{"CFE - RECIBO LUZ", models.CategoryUtilities},
		{"FARMACIA GUADALAJARA", models.CategoryHealthcare},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			category, source := s.service.Suggest(s.user.ID, tc.description)
			s.Equal(tc.expected, category)
			s.Equal(SuggestionSourceKeyword, source)
		})
	}
}

func (s *CategorizerServiceTestSuite) TestSuggestNeverReturnsOther() {
	category, source := s.service.Suggest(s.user.ID, "ZZGX 9981 UNMATCHED")

	s.Equal(models.CategoryShopping, category)
	s.Equal(SuggestionSourceFallback, source)
	s.False(models.IsOther(category))
}

func (s *CategorizerServiceTestSuite) TestSuggestEmptyDescription() {
	category, source := s.service.Suggest(s.user.ID, "   ")

	s.Equal(models.CategoryShopping, category)
	s.Equal(SuggestionSourceFallback, source)
}

func (s *CategorizerServiceTestSuite) TestPatternPointingAtOtherIsUnlearned() {
	s.Require().NoError(s.patternRepo.Upsert(&models.LearnedPattern{
		UserID:     s.user.ID,
		Pattern:    "acme widgets llc",
		Category:   models.CategoryOther,
		Confidence: models.ConfidenceManualEdit,
	}))

	category, source := s.service.Suggest(s.user.ID, "ACME WIDGETS LLC")

	s.Equal(models.CategoryShopping, category)
	s.Equal(SuggestionSourceFallback, source)
}

func (s *CategorizerServiceTestSuite) TestCategorizeForImportFallsBackToOther() {
	category := s.service.CategorizeForImport(s.user.ID, "ZZGX 9981 UNMATCHED")
	s.Equal(models.CategoryOther, category)

	category = s.service.CategorizeForImport(s.user.ID, "")
	s.Equal(models.CategoryOther, category)
}

func (s *CategorizerServiceTestSuite) TestCategorizeForImportUsesLearnedPattern() {
	s.Require().NoError(s.patternRepo.Upsert(&models.LearnedPattern{
		UserID:     s.user.ID,
		Pattern:    "acme widgets llc",
		Category:   models.CategoryServices,
		Confidence: models.ConfidenceManualEdit,
	}))

	category := s.service.CategorizeForImport(s.user.ID, "ACME WIDGETS LLC")
	s.Equal(models.CategoryServices, category)
}

func (s *CategorizerServiceTestSuite) TestKeywordCategory() {
	category, ok := s.service.KeywordCategory("Cena en RESTAURANTE La Casa")
	s.True(ok)
	s.Equal(models.CategoryDining, category)

	_, ok = s.service.KeywordCategory("ZZGX 9981")
	s.False(ok)
}

func TestCategorizerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategorizerServiceTestSuite))
}
