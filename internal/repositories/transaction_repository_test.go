package repositories

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositoryTestSuite defines the test suite for the transaction repository
type TransactionRepositoryTestSuite struct {
	suite.Suite
	db    *database.DB
	user  *models.User
	other *models.User
	repo  TransactionRepositoryInterface
}

// SetupTest runs before each test
func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "neighbor@example.com")
	s.repo = NewTransactionRepository(s.db.DB)
}

// TearDownTest runs after each test
func (s *TransactionRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) createTransaction(userID uuid.UUID, description, category, amount string, date time.Time) *models.Transaction {
	transaction := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
	}
	s.Require().NoError(s.repo.Create(transaction))
	return transaction
}

func (s *TransactionRepositoryTestSuite) TestGetByID_OwnerScoping() {
	transaction := s.createTransaction(s.user.ID, "OXXO GAS", models.CategoryTransportation, "-350.00", time.Now())

	found, err := s.repo.GetByID(transaction.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal(transaction.ID, found.ID)

	// Another user cannot see it.
	_, err = s.repo.GetByID(transaction.ID, s.other.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestCreateBatch() {
	batch := []models.Transaction{
		{UserID: s.user.ID, Date: time.Now(), Description: "WALMART", Amount: decimal.RequireFromString("-120.00"), Category: models.CategoryGroceries},
		{UserID: s.user.ID, Date: time.Now(), Description: "UBER - TRIP", Amount: decimal.RequireFromString("-85.00"), Category: models.CategoryTransportation},
	}
	s.Require().NoError(s.repo.CreateBatch(batch))

	_, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

func (s *TransactionRepositoryTestSuite) TestCreateBatch_Empty() {
	s.NoError(s.repo.CreateBatch(nil))
}

func (s *TransactionRepositoryTestSuite) TestGetWithFilters_EffectiveCategory() {
	plain := s.createTransaction(s.user.ID, "SORIANA", models.CategoryGroceries, "-200.00", time.Now())
	overridden := s.createTransaction(s.user.ID, "TOKS", models.CategoryGroceries, "-180.00", time.Now())
	s.Require().NoError(s.repo.SetLearnedCategory(overridden.ID, s.user.ID, models.CategoryDining))

	// The propagated category wins over the original one.
	dining, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, Category: models.CategoryDining})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(dining, 1)
	s.Equal(overridden.ID, dining[0].ID)

	groceries, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, Category: models.CategoryGroceries})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(groceries, 1)
	s.Equal(plain.ID, groceries[0].ID)
}

func (s *TransactionRepositoryTestSuite) TestGetWithFilters_Merchant() {
	s.createTransaction(s.user.ID, "UBER - TRIP 48213", models.CategoryTransportation, "-85.00", time.Now())
	s.createTransaction(s.user.ID, "WALMART SUPERCENTER", models.CategoryGroceries, "-320.00", time.Now())

	results, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, Merchant: "uber"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(results, 1)
	s.Equal("UBER", results[0].Merchant)
}

func (s *TransactionRepositoryTestSuite) TestGetWithFilters_AmountBounds() {
	s.createTransaction(s.user.ID, "CINEMEX", models.CategoryEntertainment, "-150.00", time.Now())
	s.createTransaction(s.user.ID, "OXXO", models.CategoryShopping, "-25.00", time.Now())
	s.createTransaction(s.user.ID, "DEVOLUCION AMAZON", models.CategoryShopping, "120.00", time.Now())

	// Bounds compare magnitudes, so refunds are included.
	min := decimal.RequireFromString("100.00")
	results, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, MinAmount: &min})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(results, 2)

	max := decimal.RequireFromString("50.00")
	results, total, err = s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, MaxAmount: &max})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(results, 1)
	s.Equal("OXXO", results[0].Description)
}

func (s *TransactionRepositoryTestSuite) TestGetWithFilters_Pagination() {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.createTransaction(s.user.ID, "FIRST", models.CategoryShopping, "-10.00", base)
	s.createTransaction(s.user.ID, "SECOND", models.CategoryShopping, "-20.00", base.AddDate(0, 0, 1))
	s.createTransaction(s.user.ID, "THIRD", models.CategoryShopping, "-30.00", base.AddDate(0, 0, 2))

	page, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(page, 2)

	// Newest first.
	s.Equal("THIRD", page[0].Description)
	s.Equal("SECOND", page[1].Description)

	page, total, err = s.repo.GetWithFilters(models.TransactionFilters{UserID: s.user.ID, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(page, 1)
	s.Equal("FIRST", page[0].Description)
}

func (s *TransactionRepositoryTestSuite) TestGetByDateRange() {
	s.createTransaction(s.user.ID, "JANUARY", models.CategoryShopping, "-10.00", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	s.createTransaction(s.user.ID, "MARCH", models.CategoryShopping, "-20.00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	results, err := s.repo.GetByDateRange(s.user.ID,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("MARCH", results[0].Description)
}

func (s *TransactionRepositoryTestSuite) TestUpdate_UnknownTransaction() {
	transaction := &models.Transaction{
		ID:          uuid.New(),
		UserID:      s.user.ID,
		Description: "GHOST",
		Category:    models.CategoryShopping,
	}
	s.ErrorIs(s.repo.Update(transaction), ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestDelete() {
	transaction := s.createTransaction(s.user.ID, "TO DELETE", models.CategoryShopping, "-10.00", time.Now())

	// The wrong owner cannot delete it.
	s.ErrorIs(s.repo.Delete(transaction.ID, s.other.ID), ErrTransactionNotFound)

	s.Require().NoError(s.repo.Delete(transaction.ID, s.user.ID))
	_, err := s.repo.GetByID(transaction.ID, s.user.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestDeleteAllForUser() {
	s.createTransaction(s.user.ID, "ONE", models.CategoryShopping, "-10.00", time.Now())
	s.createTransaction(s.user.ID, "TWO", models.CategoryShopping, "-20.00", time.Now())
	kept := s.createTransaction(s.other.ID, "NEIGHBOR", models.CategoryShopping, "-30.00", time.Now())

	count, err := s.repo.DeleteAllForUser(s.user.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	_, err = s.repo.GetByID(kept.ID, s.other.ID)
	s.NoError(err)
}

func (s *TransactionRepositoryTestSuite) TestSetLearnedCategory_OwnerScoping() {
	transaction := s.createTransaction(s.user.ID, "TOKS", models.CategoryGroceries, "-180.00", time.Now())

	s.ErrorIs(s.repo.SetLearnedCategory(transaction.ID, s.other.ID, models.CategoryDining), ErrTransactionNotFound)

	s.Require().NoError(s.repo.SetLearnedCategory(transaction.ID, s.user.ID, models.CategoryDining))
	found, err := s.repo.GetByID(transaction.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal(models.CategoryDining, found.EffectiveCategory())
	s.Equal(models.CategoryGroceries, found.Category)
}

func (s *TransactionRepositoryTestSuite) TestSetRecurringByDescription() {
	s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategoryEntertainment, "-219.00", time.Now())
	s.createTransaction(s.user.ID, "NETFLIX.COM", models.CategoryEntertainment, "-219.00", time.Now().AddDate(0, -1, 0))
	partial := s.createTransaction(s.user.ID, "NETFLIX.COM - MX", models.CategoryEntertainment, "-219.00", time.Now())

	// Only exact description matches are flagged.
	count, err := s.repo.SetRecurringByDescription(s.user.ID, "NETFLIX.COM", true)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	found, err := s.repo.GetByID(partial.ID, s.user.ID)
	s.Require().NoError(err)
	s.False(found.IsRecurring)
}

func (s *TransactionRepositoryTestSuite) TestReassignCategory_MatchesEffectiveCategory() {
	plain := s.createTransaction(s.user.ID, "SORIANA", models.CategoryGroceries, "-200.00", time.Now())
	overridden := s.createTransaction(s.user.ID, "TOKS", models.CategoryDining, "-180.00", time.Now())
	s.Require().NoError(s.repo.SetLearnedCategory(overridden.ID, s.user.ID, models.CategoryGroceries))

	count, err := s.repo.ReassignCategory(s.user.ID, models.CategoryGroceries, models.CategoryShopping)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	for _, id := range []uuid.UUID{plain.ID, overridden.ID} {
		found, err := s.repo.GetByID(id, s.user.ID)
		s.Require().NoError(err)
		s.Equal(models.CategoryShopping, found.EffectiveCategory())
	}
}

func (s *TransactionRepositoryTestSuite) TestDistinctDescriptionsByCategory() {
	s.createTransaction(s.user.ID, "WALMART", models.CategoryGroceries, "-100.00", time.Now())
	s.createTransaction(s.user.ID, "WALMART", models.CategoryGroceries, "-150.00", time.Now())
	s.createTransaction(s.user.ID, "SORIANA", models.CategoryGroceries, "-200.00", time.Now())
	s.createTransaction(s.user.ID, "CINEMEX", models.CategoryEntertainment, "-120.00", time.Now())

	descriptions, err := s.repo.DistinctDescriptionsByCategory(s.user.ID, models.CategoryGroceries)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"WALMART", "SORIANA"}, descriptions)
}
