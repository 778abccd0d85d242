package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"fintrack/internal/config"
	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReceiptHandler handles receipt endpoints
type ReceiptHandler struct {
	receiptRepo       repositories.ReceiptRepositoryInterface
	transactionRepo   repositories.TransactionRepositoryInterface
	extractionService services.ReceiptExtractionServiceInterface
	uploadConfig      *config.UploadConfig
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(
	receiptRepo repositories.ReceiptRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	extractionService services.ReceiptExtractionServiceInterface,
	uploadConfig *config.UploadConfig,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptRepo:       receiptRepo,
		transactionRepo:   transactionRepo,
		extractionService: extractionService,
		uploadConfig:      uploadConfig,
	}
}

// Upload stores a receipt image plus its OCR text. The image arrives in
// the "file" field; OCR runs client-side and the text rides along in the
// "ocrText" form field.
func (h *ReceiptHandler) Upload(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("No file provided in the 'file' field"))
	}

	if fileHeader.Size > h.uploadConfig.MaxFileSize {
		return SendError(c, errors.UploadFileTooLarge)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer src.Close()

	receiptID := uuid.New()
	storagePath := filepath.Join(h.uploadConfig.Dir, fmt.Sprintf("%s%s", receiptID, filepath.Ext(fileHeader.Filename)))

	if err := os.MkdirAll(h.uploadConfig.Dir, 0o755); err != nil {
		return SendSystemError(c, err)
	}

	dst, err := os.Create(storagePath)
	if err != nil {
		return SendSystemError(c, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return SendSystemError(c, err)
	}

	receipt := models.Receipt{
		ID:          receiptID,
		UserID:      userID,
		FileName:    fileHeader.Filename,
		StoragePath: storagePath,
		OCRText:     c.FormValue("ocrText"),
	}

	if err := h.receiptRepo.Create(&receipt); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toReceiptResponse(&receipt))
}

// List returns the user's receipts
func (h *ReceiptHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receipts, err := h.receiptRepo.ListByUser(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, toReceiptResponse(&receipts[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Get returns a single receipt by ID
func (h *ReceiptHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid receipt ID"))
	}

	receipt, err := h.receiptRepo.GetByID(receiptID, userID)
	if err != nil {
		if err == repositories.ErrReceiptNotFound {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Link attaches a receipt to a transaction
func (h *ReceiptHandler) Link(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid receipt ID"))
	}

	var req dto.LinkReceiptRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transactionID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	receipt, err := h.receiptRepo.GetByID(receiptID, userID)
	if err != nil {
		if err == repositories.ErrReceiptNotFound {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	if receipt.TransactionID != nil {
		return SendError(c, errors.ReceiptAlreadyLinked)
	}

	if _, err := h.transactionRepo.GetByID(transactionID, userID); err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	if err := h.receiptRepo.LinkTransaction(receiptID, userID, transactionID); err != nil {
		return SendSystemError(c, err)
	}

	receipt.TransactionID = &transactionID
	return c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

// Extract mines transaction fields out of the receipt's OCR text
func (h *ReceiptHandler) Extract(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid receipt ID"))
	}

	receipt, err := h.receiptRepo.GetByID(receiptID, userID)
	if err != nil {
		if err == repositories.ErrReceiptNotFound {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	if receipt.OCRText == "" {
		return SendError(c, errors.ReceiptNoOCRText)
	}

	return c.JSON(http.StatusOK, h.extractionService.Extract(receipt.OCRText))
}

// Delete removes a receipt and its stored file
func (h *ReceiptHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid receipt ID"))
	}

	receipt, err := h.receiptRepo.GetByID(receiptID, userID)
	if err != nil {
		if err == repositories.ErrReceiptNotFound {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	if err := h.receiptRepo.Delete(receiptID, userID); err != nil {
		return SendSystemError(c, err)
	}

	// Best effort: a dangling file on disk is harmless.
	_ = os.Remove(receipt.StoragePath)

	return c.NoContent(http.StatusNoContent)
}

func toReceiptResponse(receipt *models.Receipt) dto.ReceiptResponse {
	response := dto.ReceiptResponse{
		ID:       receipt.ID.String(),
		FileName: receipt.FileName,
		OCRText:  receipt.OCRText,
	}

	if receipt.TransactionID != nil {
		response.TransactionID = receipt.TransactionID.String()
	}

	return response
}
