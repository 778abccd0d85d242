package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// merchantTemplate pairs a plausible statement line with the category a
// human would assign it, so seeded data exercises the suggestion tiers.
type merchantTemplate struct {
	description string
	category    string
	minAmount   float64
	maxAmount   float64
}

var seedMerchants = []merchantTemplate{
	{"WALMART SUPERCENTER - STORE 2612", models.CategoryGroceries, 200, 2500},
	{"SORIANA HIPER - SUC CENTRO", models.CategoryGroceries, 150, 1800},
	{"OXXO - TIENDA 4471", models.CategoryGroceries, 30, 400},
	{"UBER EATS - PEDIDO", models.CategoryDining, 120, 600},
	{"STARBUCKS - REFORMA", models.CategoryDining, 60, 250},
	{"UBER - TRIP", models.CategoryTransportation, 45, 350},
	{"PEMEX - ESTACION 8821", models.CategoryTransportation, 300, 1200},
	{"NETFLIX.COM", models.CategorySubscriptions, 99, 299},
	{"SPOTIFY", models.CategorySubscriptions, 99, 199},
	{"AMAZON MX - MARKETPLACE", models.CategoryShopping, 150, 3500},
	{"MERCADOLIBRE - COMPRA", models.CategoryShopping, 100, 2800},
	{"CFE - RECIBO LUZ", models.CategoryUtilities, 300, 1500},
	{"TELMEX - TELEFONO E INTERNET", models.CategoryUtilities, 400, 700},
	{"FARMACIA GUADALAJARA", models.CategoryHealthcare, 80, 900},
	{"CINEPOLIS - BOLETOS", models.CategoryEntertainment, 90, 450},
	{"AEROMEXICO - VUELO", models.CategoryTravel, 1500, 9000},
}

// seedGenerator produces fake but realistic transaction history for
// development and demos.
type seedGenerator struct {
	transactionRepo repositories.TransactionRepositoryInterface
	faker           *gofakeit.Faker
	logger          *slog.Logger
}

// NewSeedGenerator creates a new seed data generator
func NewSeedGenerator(
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) SeedGeneratorInterface {
	return &seedGenerator{
		transactionRepo: transactionRepo,
		faker:           gofakeit.New(0),
		logger:          logger,
	}
}

// GenerateTransactions builds count fake expenses spread over the last
// six months. Amounts are negative per the expense sign convention.
func (g *seedGenerator) GenerateTransactions(userID uuid.UUID, count int) []models.Transaction {
	transactions := make([]models.Transaction, 0, count)

	for i := 0; i < count; i++ {
		tmpl := seedMerchants[g.faker.IntRange(0, len(seedMerchants)-1)]

		amount := decimal.NewFromFloat(g.faker.Float64Range(tmpl.minAmount, tmpl.maxAmount)).
			Round(2).
			Neg()

		daysAgo := g.faker.IntRange(0, 180)
		date := time.Now().UTC().AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour)

		transactions = append(transactions, models.Transaction{
			UserID:        userID,
			Date:          date,
			Description:   tmpl.description,
			Amount:        amount,
			Category:      tmpl.category,
			PaymentMethod: models.PaymentMethodUnknown,
		})
	}

	return transactions
}

// SeedDemoData persists a batch of generated transactions for the user
func (g *seedGenerator) SeedDemoData(userID uuid.UUID, transactionCount int) error {
	transactions := g.GenerateTransactions(userID, transactionCount)

	if err := g.transactionRepo.CreateBatch(transactions); err != nil {
		return fmt.Errorf("failed to seed demo transactions: %w", err)
	}

	g.logger.Info("seeded demo data",
		"user_id", userID,
		"transactions", len(transactions))

	return nil
}
