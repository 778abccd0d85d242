package handlers

import (
	"net/http"

	"fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	transactionRepo repositories.TransactionRepositoryInterface
	seedGenerator   services.SeedGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	seedGenerator services.SeedGeneratorInterface,
) *DevHandler {
	return &DevHandler{
		transactionRepo: transactionRepo,
		seedGenerator:   seedGenerator,
	}
}

// GenerateTestData seeds realistic demo transactions for the current user
//
// Query parameters:
//   - count: Number of transactions to generate (default: 100, max: 1000)
func (h *DevHandler) GenerateTestData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntParam(c, "count", 100)
	if count < 1 {
		count = 1
	}
	if count > 1000 {
		count = 1000
	}

	if err := h.seedGenerator.SeedDemoData(userID, count); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]int{"transactions_created": count},
		Message: "test data generated successfully",
	})
}

// ClearTestData removes all transactions for the current user
func (h *DevHandler) ClearTestData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	deleted, err := h.transactionRepo.DeleteAllForUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]int64{"transactions_deleted": deleted},
		Message: "test data cleared",
	})
}
