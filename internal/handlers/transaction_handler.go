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

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionRepo    repositories.TransactionRepositoryInterface
	categorizerService services.CategorizerServiceInterface
	propagationService services.PropagationServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionRepo repositories.TransactionRepositoryInterface,
	categorizerService services.CategorizerServiceInterface,
	propagationService services.PropagationServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionRepo:    transactionRepo,
		categorizerService: categorizerService,
		propagationService: propagationService,
	}
}

// Create handles manual transaction entry
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidAmount)
	}

	category := req.Category
	if category == "" {
		category = h.categorizerService.CategorizeForImport(userID, req.Description)
	}

	transaction := models.Transaction{
		UserID:        userID,
		Date:          date,
		Description:   req.Description,
		Amount:        amount,
		Category:      category,
		IsRecurring:   req.IsRecurring,
		PaymentMethod: req.PaymentMethod,
	}

	if req.PaymentMethod == models.PaymentMethodCreditCard {
		if req.CreditCardID == "" {
			return SendError(c, errors.TransactionCreditCardRequired)
		}
		cardID, err := uuid.Parse(req.CreditCardID)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit card ID"))
		}
		transaction.CreditCardID = &cardID
	}

	if err := h.transactionRepo.Create(&transaction); err != nil {
		if err == models.ErrCreditCardIDRequired {
			return SendError(c, errors.TransactionCreditCardRequired)
		}
		if err == models.ErrInvalidPaymentMethod {
			return SendError(c, errors.TransactionInvalidPayment)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(&transaction))
}

// List returns the user's transactions with optional filters
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters, errCode := buildTransactionFilters(userID, query)
	if errCode != "" {
		return SendError(c, errCode)
	}

	transactions, total, err := h.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: responses,
		Total:        total,
		Offset:       filters.Offset,
		Limit:        filters.Limit,
	})
}

// Get returns a single transaction by ID
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionRepo.GetByID(transactionID, userID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// Update edits a transaction's mutable fields
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionRepo.GetByID(transactionID, userID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate)
		}
		transaction.Date = date
	}
	if req.Description != "" {
		transaction.Description = req.Description
		transaction.Merchant = models.DeriveMerchant(req.Description)
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidAmount)
		}
		transaction.Amount = amount
	}
	if req.PaymentMethod != "" {
		transaction.PaymentMethod = req.PaymentMethod
		if req.PaymentMethod != models.PaymentMethodCreditCard {
			transaction.CreditCardID = nil
		}
	}
	if req.CreditCardID != "" {
		cardID, err := uuid.Parse(req.CreditCardID)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit card ID"))
		}
		transaction.CreditCardID = &cardID
	}
	if req.IsRecurring != nil {
		transaction.IsRecurring = *req.IsRecurring
	}

	if transaction.PaymentMethod == models.PaymentMethodCreditCard && transaction.CreditCardID == nil {
		return SendError(c, errors.TransactionCreditCardRequired)
	}

	if err := h.transactionRepo.Update(transaction); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionRepo.Delete(transactionID, userID); err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAll removes every transaction belonging to the user
func (h *TransactionHandler) DeleteAll(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	deleted, err := h.transactionRepo.DeleteAllForUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]int64{"deleted": deleted},
		Message: "All transactions deleted",
	})
}

// UpdateCategory recategorizes a transaction and optionally pushes the
// category to every similar transaction
func (h *TransactionHandler) UpdateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	updated, err := h.propagationService.UpdateTransactionCategory(userID, transactionID, req.Category, req.ApplyToSimilar)
	if err != nil {
		if err == services.ErrPropagationNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PropagationResponse{Updated: updated})
}

// SimilarCount reports how many transactions an apply-to-similar update
// would touch
func (h *TransactionHandler) SimilarCount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	description := c.QueryParam("description")
	if description == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("description is required"))
	}

	count, err := h.propagationService.CountSimilar(userID, description)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SimilarCountResponse{
		Description: description,
		Count:       count,
	})
}

// SetRecurring flags every transaction matching a description as recurring
func (h *TransactionHandler) SetRecurring(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.SetRecurringRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	updated, err := h.transactionRepo.SetRecurringByDescription(userID, req.Description, req.IsRecurring)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PropagationResponse{Updated: updated})
}

func buildTransactionFilters(userID uuid.UUID, query dto.ListTransactionsQuery) (models.TransactionFilters, errors.ErrorCode) {
	filters := models.TransactionFilters{
		UserID:   userID,
		Category: query.Category,
		Merchant: query.Merchant,
		Offset:   query.Offset,
		Limit:    query.Limit,
	}

	if filters.Limit <= 0 {
		filters.Limit = defaultPageSize
	}
	if filters.Limit > maxPageSize {
		filters.Limit = maxPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	if query.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return filters, errors.ValidationInvalidDate
		}
		filters.StartDate = &startDate
	}
	if query.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return filters, errors.ValidationInvalidDate
		}
		filters.EndDate = &endDate
	}
	if query.MinAmount != "" {
		minAmount, err := decimal.NewFromString(query.MinAmount)
		if err != nil {
			return filters, errors.ValidationInvalidAmount
		}
		filters.MinAmount = &minAmount
	}
	if query.MaxAmount != "" {
		maxAmount, err := decimal.NewFromString(query.MaxAmount)
		if err != nil {
			return filters, errors.ValidationInvalidAmount
		}
		filters.MaxAmount = &maxAmount
	}

	return filters, ""
}

func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	response := dto.TransactionResponse{
		ID:                t.ID.String(),
		Date:              t.Date,
		Description:       t.Description,
		Amount:            t.Amount.StringFixed(2),
		Category:          t.Category,
		LearnedCategory:   t.LearnedCategory,
		EffectiveCategory: t.EffectiveCategory(),
		Merchant:          t.Merchant,
		IsRecurring:       t.IsRecurring,
		PaymentMethod:     t.PaymentMethod,
		CreatedAt:         t.CreatedAt,
	}

	if t.CreditCardID != nil {
		response.CreditCardID = t.CreditCardID.String()
	}

	return response
}
