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

type PropagationServiceTestSuite struct {
	suite.Suite
	db              *database.DB
	user            *models.User
	peer            *models.User
	service         PropagationServiceInterface
	transactionRepo repositories.TransactionRepositoryInterface
	patternRepo     repositories.LearnedPatternRepositoryInterface
}

func (s *PropagationServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "user@example.com")
	s.peer = database.CreateTestUser(s.T(), s.db, "peer@example.com")

	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	s.patternRepo = repositories.NewLearnedPatternRepository(s.db.DB)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewPropagationService(s.db.DB, logger)
}

func (s *PropagationServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *PropagationServiceTestSuite) createTransaction(userID uuid.UUID, description, category string) *models.Transaction {
	transaction := &models.Transaction{
		UserID:      userID,
		Date:        time.Now(),
		Description: description,
		Amount:      decimal.NewFromInt(-250),
		Category:    category,
	}
	s.Require().NoError(s.db.Create(transaction).Error)
	return transaction
}

func (s *PropagationServiceTestSuite) reload(id uuid.UUID) *models.Transaction {
	transaction, err := s.transactionRepo.GetByID(id, s.user.ID)
	s.Require().NoError(err)
	return transaction
}

func (s *PropagationServiceTestSuite) TestUpdateSingleTransaction() {
	transaction := s.createTransaction(s.user.ID, "UBER - TRIP 48213", models.CategoryOther)

	updated, err := s.service.UpdateTransactionCategory(s.user.ID, transaction.ID, models.CategoryTransportation, false)
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	s.Equal(models.CategoryTransportation, s.reload(transaction.ID).EffectiveCategory())

	match, err := s.patternRepo.GetBestMatch(s.user.ID, "uber - trip 48213")
	s.Require().NoError(err)
	s.Equal(models.CategoryTransportation, match.Category)
	s.InDelta(models.ConfidenceManualEdit, match.Confidence, 0.001)
}

func (s *PropagationServiceTestSuite) TestUpdateAppliesToSimilar() {
	first := s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategoryOther)
	second := s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategoryOther)
	unrelated := s.createTransaction(s.user.ID, "WALMART SUPERCENTER", models.CategoryGroceries)

	updated, err := s.service.UpdateTransactionCategory(s.user.ID, first.ID, models.CategorySubscriptions, true)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)

	s.Equal(models.CategorySubscriptions, s.reload(first.ID).EffectiveCategory())
	s.Equal(models.CategorySubscriptions, s.reload(second.ID).EffectiveCategory())
	s.Equal(models.CategoryGroceries, s.reload(unrelated.ID).EffectiveCategory())
}

func (s *PropagationServiceTestSuite) TestUpdateDoesNotTouchOtherUsers() {
	own := s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategoryOther)
	theirs := s.createTransaction(s.peer.ID, "NETFLIX.COM", models.CategoryOther)

	updated, err := s.service.UpdateTransactionCategory(s.user.ID, own.ID, models.CategorySubscriptions, true)
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	peerTransaction, err := s.transactionRepo.GetByID(theirs.ID, s.peer.ID)
	s.Require().NoError(err)
	s.Equal(models.CategoryOther, peerTransaction.EffectiveCategory())
}

func (s *PropagationServiceTestSuite) TestUpdateUnknownTransaction() {
	_, err := s.service.UpdateTransactionCategory(s.user.ID, uuid.New(), models.CategoryDining, false)
	s.ErrorIs(err, ErrPropagationNotFound)
}

func (s *PropagationServiceTestSuite) TestUpdateToOtherSkipsLearning() {
	transaction := s.createTransaction(s.user.ID, "MYSTERY CHARGE", models.CategoryDining)

	updated, err := s.service.UpdateTransactionCategory(s.user.ID, transaction.ID, models.CategoryOther, false)
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	s.Equal(models.CategoryOther, s.reload(transaction.ID).EffectiveCategory())

	patterns, err := s.patternRepo.ListByUser(s.user.ID)
	s.Require().NoError(err)
	s.Empty(patterns)
}

func (s *PropagationServiceTestSuite) TestUpdateToOtherDoesNotPropagate() {
	edited := s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategorySubscriptions)
	sibling := s.createTransaction(s.user.ID, "NETFLIX.COM MONTHLY", models.CategorySubscriptions)

	// Demoting to "other" stays on the edited row even when the caller
	// asked for apply-to-similar.
	updated, err := s.service.UpdateTransactionCategory(s.user.ID, edited.ID, models.CategoryOther, true)
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	s.Equal(models.CategoryOther, s.reload(edited.ID).EffectiveCategory())
	s.Equal(models.CategorySubscriptions, s.reload(sibling.ID).EffectiveCategory())

	patterns, err := s.patternRepo.ListByUser(s.user.ID)
	s.Require().NoError(err)
	s.Empty(patterns)
}

func (s *PropagationServiceTestSuite) TestRenameCategory() {
	first := s.createTransaction(s.user.ID, "TAQUERIA EL PASTOR", models.CategoryDining)
	second := s.createTransaction(s.user.ID, "SUSHI ROLL - CENTRO", models.CategoryDining)
	unrelated := s.createTransaction(s.user.ID, "WALMART SUPERCENTER", models.CategoryGroceries)

	updated, err := s.service.RenameCategory(s.user.ID, models.CategoryDining, models.CategoryEntertainment)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)

	s.Equal(models.CategoryEntertainment, s.reload(first.ID).EffectiveCategory())
	s.Equal(models.CategoryEntertainment, s.reload(second.ID).EffectiveCategory())
	s.Equal(models.CategoryGroceries, s.reload(unrelated.ID).EffectiveCategory())

	// One pattern per distinct description, at bulk-rename confidence.
	patterns, err := s.patternRepo.ListByUser(s.user.ID)
	s.Require().NoError(err)
	s.Len(patterns, 2)
	for _, pattern := range patterns {
		s.Equal(models.CategoryEntertainment, pattern.Category)
		s.InDelta(models.ConfidenceBulkRename, pattern.Confidence, 0.001)
	}
}

func (s *PropagationServiceTestSuite) TestRenameMatchesEffectiveCategory() {
	// Originally shopping, already propagated into dining; the rename must
	// pick it up by its effective category.
	transaction := s.createTransaction(s.user.ID, "CAFE CENTRAL", models.CategoryShopping)
	s.Require().NoError(s.transactionRepo.SetLearnedCategory(transaction.ID, s.user.ID, models.CategoryDining))

	updated, err := s.service.RenameCategory(s.user.ID, models.CategoryDining, models.CategoryEntertainment)
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	s.Equal(models.CategoryEntertainment, s.reload(transaction.ID).EffectiveCategory())
}

func (s *PropagationServiceTestSuite) TestRenameRewritesExistingPatterns() {
	s.Require().NoError(s.patternRepo.Upsert(&models.LearnedPattern{
		UserID:     s.user.ID,
		Pattern:    "taqueria el pastor",
		Category:   models.CategoryDining,
		Confidence: models.ConfidenceManualEdit,
	}))

	_, err := s.service.RenameCategory(s.user.ID, models.CategoryDining, models.CategoryEntertainment)
	s.Require().NoError(err)

	match, err := s.patternRepo.GetBestMatch(s.user.ID, "taqueria el pastor")
	s.Require().NoError(err)
	s.Equal(models.CategoryEntertainment, match.Category)
}

func (s *PropagationServiceTestSuite) TestRenameIntoOtherRefused() {
	s.createTransaction(s.user.ID, "TAQUERIA EL PASTOR", models.CategoryDining)

	_, err := s.service.RenameCategory(s.user.ID, models.CategoryDining, models.CategoryOther)
	s.ErrorIs(err, ErrRenameIntoOther)
}

func (s *PropagationServiceTestSuite) TestRenameSameCategoryIsNoOp() {
	s.createTransaction(s.user.ID, "TAQUERIA EL PASTOR", models.CategoryDining)

	updated, err := s.service.RenameCategory(s.user.ID, models.CategoryDining, models.CategoryDining)
	s.Require().NoError(err)
	s.Equal(int64(0), updated)
}

func (s *PropagationServiceTestSuite) TestCountSimilar() {
	s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategorySubscriptions)
	s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategorySubscriptions)
	s.createTransaction(s.user.ID, "NETFLIX.COM 2024", models.CategorySubscriptions)
	s.createTransaction(s.peer.ID, "NETFLIX.COM", models.CategorySubscriptions)

	// The preview counts exact descriptions only: the longer variant and
	// the peer's row stay out.
	count, err := s.service.CountSimilar(s.user.ID, "NETFLIX.COM")
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func TestPropagationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropagationServiceTestSuite))
}
