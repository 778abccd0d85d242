package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreditCardHandler handles credit card endpoints
type CreditCardHandler struct {
	creditCardRepo repositories.CreditCardRepositoryInterface
}

// NewCreditCardHandler creates a new credit card handler
func NewCreditCardHandler(creditCardRepo repositories.CreditCardRepositoryInterface) *CreditCardHandler {
	return &CreditCardHandler{creditCardRepo: creditCardRepo}
}

// Create registers a credit card
func (h *CreditCardHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCreditCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	card := models.CreditCard{
		UserID:   userID,
		Name:     req.Name,
		LastFour: req.LastFour,
	}

	if err := h.creditCardRepo.Create(&card); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toCreditCardResponse(&card))
}

// List returns the user's credit cards
func (h *CreditCardHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	cards, err := h.creditCardRepo.ListByUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.CreditCardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, toCreditCardResponse(&cards[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Update edits a credit card
func (h *CreditCardHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit card ID"))
	}

	var req dto.UpdateCreditCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	card, err := h.creditCardRepo.GetByID(cardID, userID)
	if err != nil {
		if err == repositories.ErrCreditCardNotFound {
			return SendError(c, errors.CreditCardNotFound)
		}
		return SendSystemError(c, err)
	}

	if req.Name != "" {
		card.Name = req.Name
	}
	if req.LastFour != "" {
		card.LastFour = req.LastFour
	}

	if err := h.creditCardRepo.Update(card); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toCreditCardResponse(card))
}

// Delete removes a credit card. Cards referenced by transactions are kept.
func (h *CreditCardHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit card ID"))
	}

	if _, err := h.creditCardRepo.GetByID(cardID, userID); err != nil {
		if err == repositories.ErrCreditCardNotFound {
			return SendError(c, errors.CreditCardNotFound)
		}
		return SendSystemError(c, err)
	}

	inUse, err := h.creditCardRepo.CountTransactions(cardID)
	if err != nil {
		return SendSystemError(c, err)
	}
	if inUse > 0 {
		return SendError(c, errors.CreditCardInUse)
	}

	if err := h.creditCardRepo.Delete(cardID, userID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toCreditCardResponse(card *models.CreditCard) dto.CreditCardResponse {
	return dto.CreditCardResponse{
		ID:       card.ID.String(),
		Name:     card.Name,
		LastFour: card.LastFour,
	}
}
