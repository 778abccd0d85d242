package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetRepo         repositories.BudgetRepositoryInterface
	aggregationService services.AggregationServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(
	budgetRepo repositories.BudgetRepositoryInterface,
	aggregationService services.AggregationServiceInterface,
) *BudgetHandler {
	return &BudgetHandler{
		budgetRepo:         budgetRepo,
		aggregationService: aggregationService,
	}
}

// Create adds a spending budget for a category
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return SendError(c, errors.ValidationInvalidAmount)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate)
	}

	budget := models.Budget{
		UserID:    userID,
		Category:  req.Category,
		Amount:    amount,
		Period:    req.Period,
		StartDate: startDate,
	}

	if err := h.budgetRepo.Create(&budget); err != nil {
		if err == models.ErrInvalidBudgetPeriod {
			return SendError(c, errors.BudgetInvalidPeriod)
		}
		return SendSystemError(c, err)
	}

	response, err := h.toBudgetResponse(userID, &budget)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, response)
}

// List returns the user's budgets with current-period spend
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgets, err := h.budgetRepo.ListByUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		response, err := h.toBudgetResponse(userID, &budgets[i])
		if err != nil {
			return SendSystemError(c, err)
		}
		responses = append(responses, response)
	}

	return c.JSON(http.StatusOK, responses)
}

// Get returns a single budget by ID
func (h *BudgetHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetRepo.GetByID(budgetID, userID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	response, err := h.toBudgetResponse(userID, budget)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Update edits a budget
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetRepo.GetByID(budgetID, userID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || amount.IsNegative() {
			return SendError(c, errors.ValidationInvalidAmount)
		}
		budget.Amount = amount
	}
	if req.Period != "" {
		budget.Period = req.Period
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate)
		}
		budget.StartDate = startDate
	}

	if err := h.budgetRepo.Update(budget); err != nil {
		return SendSystemError(c, err)
	}

	response, err := h.toBudgetResponse(userID, budget)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// Delete removes a budget
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetRepo.Delete(budgetID, userID); err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BudgetHandler) toBudgetResponse(userID uuid.UUID, budget *models.Budget) (dto.BudgetResponse, error) {
	spent, err := h.aggregationService.SpentForBudget(userID, budget, time.Now())
	if err != nil {
		return dto.BudgetResponse{}, err
	}

	return dto.BudgetResponse{
		ID:        budget.ID.String(),
		Category:  budget.Category,
		Amount:    budget.Amount.StringFixed(2),
		Period:    budget.Period,
		StartDate: budget.StartDate.Format("2006-01-02"),
		Spent:     spent.StringFixed(2),
		Remaining: budget.Amount.Sub(spent).StringFixed(2),
	}, nil
}
