package repositories

import (
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// LearnedPatternRepositoryTestSuite defines the test suite for the learned pattern repository
type LearnedPatternRepositoryTestSuite struct {
	suite.Suite
	db    *database.DB
	user  *models.User
	other *models.User
	repo  LearnedPatternRepositoryInterface
}

// SetupTest runs before each test
func (s *LearnedPatternRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "neighbor@example.com")
	s.repo = NewLearnedPatternRepository(s.db.DB)
}

// TearDownTest runs after each test
func (s *LearnedPatternRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestLearnedPatternRepositorySuite runs the test suite
func TestLearnedPatternRepositorySuite(t *testing.T) {
	suite.Run(t, new(LearnedPatternRepositoryTestSuite))
}

func (s *LearnedPatternRepositoryTestSuite) upsert(userID uuid.UUID, pattern, category string, confidence float64) {
	s.Require().NoError(s.repo.Upsert(&models.LearnedPattern{
		UserID:     userID,
		Pattern:    pattern,
		Category:   category,
		Confidence: confidence,
	}))
}

func (s *LearnedPatternRepositoryTestSuite) TestUpsertAndGetBestMatch() {
	s.upsert(s.user.ID, "uber - trip 48213", models.CategoryTransportation, models.ConfidenceManualEdit)

	match, err := s.repo.GetBestMatch(s.user.ID, "uber - trip 48213")
	s.Require().NoError(err)
	s.Equal(models.CategoryTransportation, match.Category)
	s.InDelta(models.ConfidenceManualEdit, match.Confidence, 0.001)
}

func (s *LearnedPatternRepositoryTestSuite) TestUpsertReplacesOnConflict() {
	s.upsert(s.user.ID, "toks polanco", models.CategoryGroceries, models.ConfidenceAutoLearned)

	// Last write wins for the same (user, pattern) pair.
	s.upsert(s.user.ID, "toks polanco", models.CategoryDining, models.ConfidenceBulkRename)

	match, err := s.repo.GetBestMatch(s.user.ID, "toks polanco")
	s.Require().NoError(err)
	s.Equal(models.CategoryDining, match.Category)
	s.InDelta(models.ConfidenceBulkRename, match.Confidence, 0.001)

	patterns, err := s.repo.ListByUser(s.user.ID)
	s.Require().NoError(err)
	s.Len(patterns, 1)
}

func (s *LearnedPatternRepositoryTestSuite) TestGetBestMatch_NotFound() {
	_, err := s.repo.GetBestMatch(s.user.ID, "never seen")
	s.ErrorIs(err, ErrLearnedPatternNotFound)
}

func (s *LearnedPatternRepositoryTestSuite) TestGetBestMatch_ExcludesOther() {
	// A pattern pointing at "other" behaves as if it were never learned.
	s.upsert(s.user.ID, "misc purchase", models.CategoryOther, models.ConfidenceManualEdit)

	_, err := s.repo.GetBestMatch(s.user.ID, "misc purchase")
	s.ErrorIs(err, ErrLearnedPatternNotFound)
}

func (s *LearnedPatternRepositoryTestSuite) TestGetBestMatch_UserScoped() {
	s.upsert(s.other.ID, "walmart", models.CategoryGroceries, models.ConfidenceManualEdit)

	_, err := s.repo.GetBestMatch(s.user.ID, "walmart")
	s.ErrorIs(err, ErrLearnedPatternNotFound)
}

func (s *LearnedPatternRepositoryTestSuite) TestRenameCategory() {
	s.upsert(s.user.ID, "walmart", models.CategoryGroceries, models.ConfidenceManualEdit)
	s.upsert(s.user.ID, "soriana", models.CategoryGroceries, models.ConfidenceAutoLearned)
	s.upsert(s.user.ID, "cinemex", models.CategoryEntertainment, models.ConfidenceManualEdit)
	s.upsert(s.other.ID, "walmart", models.CategoryGroceries, models.ConfidenceManualEdit)

	count, err := s.repo.RenameCategory(s.user.ID, models.CategoryGroceries, models.CategoryShopping)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	match, err := s.repo.GetBestMatch(s.user.ID, "walmart")
	s.Require().NoError(err)
	s.Equal(models.CategoryShopping, match.Category)

	// Other users and other categories stay put.
	match, err = s.repo.GetBestMatch(s.other.ID, "walmart")
	s.Require().NoError(err)
	s.Equal(models.CategoryGroceries, match.Category)

	match, err = s.repo.GetBestMatch(s.user.ID, "cinemex")
	s.Require().NoError(err)
	s.Equal(models.CategoryEntertainment, match.Category)
}

func (s *LearnedPatternRepositoryTestSuite) TestListByUser() {
	s.upsert(s.user.ID, "walmart", models.CategoryGroceries, models.ConfidenceManualEdit)
	s.upsert(s.user.ID, "cinemex", models.CategoryEntertainment, models.ConfidenceAutoLearned)
	s.upsert(s.other.ID, "soriana", models.CategoryGroceries, models.ConfidenceManualEdit)

	patterns, err := s.repo.ListByUser(s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(patterns, 2)
	for _, p := range patterns {
		s.Equal(s.user.ID, p.UserID)
	}
}
