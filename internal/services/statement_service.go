package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/spreadsheet"

	"github.com/google/uuid"
)

// statementService implements StatementServiceInterface: it turns raw
// bank statement files into categorized transactions.
type statementService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categorizer     CategorizerServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	now             func() time.Time
}

// NewStatementService creates a new statement ingestion service
func NewStatementService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categorizer CategorizerServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) StatementServiceInterface {
	return &statementService{
		transactionRepo: transactionRepo,
		categorizer:     categorizer,
		metrics:         metrics,
		logger:          logger,
		now:             time.Now,
	}
}

// ProcessUploads imports statement files sequentially. Each file succeeds
// or fails on its own; one corrupt statement never blocks the rest of the
// batch.
func (s *statementService) ProcessUploads(userID uuid.UUID, files []UploadedFile) (*dto.UploadResponse, error) {
	response := &dto.UploadResponse{
		Files: make([]dto.FileUploadResult, 0, len(files)),
	}

	for _, file := range files {
		started := s.now()
		result := s.processFile(userID, file)
		s.metrics.RecordProcessingTime("statement.file.processing", s.now().Sub(started))

		if result.Error != "" {
			response.FailedFiles++
			s.metrics.IncrementCounter("statement.file.processed", map[string]string{"status": "failed"})
		} else {
			s.metrics.IncrementCounter("statement.file.processed", map[string]string{"status": "success"})
		}

		response.TotalImported += result.Imported
		response.TotalSkipped += result.Skipped
		response.Files = append(response.Files, result)
	}

	s.metrics.RecordGauge("statement.rows.imported", float64(response.TotalImported), nil)

	return response, nil
}

func (s *statementService) processFile(userID uuid.UUID, file UploadedFile) dto.FileUploadResult {
	result := dto.FileUploadResult{FileName: file.Name}

	rows, err := spreadsheet.ReadRows(file.Name, file.Data)
	if err != nil {
		s.logger.Warn("failed to read statement file",
			"error", err,
			"file", file.Name,
			"user_id", userID)
		result.Error = err.Error()
		return result
	}

	header, err := spreadsheet.DetectHeader(rows)
	if err != nil {
		s.logger.Warn("no usable header in statement file",
			"error", err,
			"file", file.Name,
			"user_id", userID)
		result.Error = err.Error()
		return result
	}

	transactions, skipped := s.normalizeAndCategorize(userID, rows[header.Row+1:], header.Columns)
	result.Skipped = skipped

	if len(transactions) == 0 {
		result.Error = "no valid transactions found in the file"
		return result
	}

	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		s.logger.Error("failed to store imported transactions",
			"error", err,
			"file", file.Name,
			"user_id", userID)
		result.Error = fmt.Sprintf("failed to store transactions: %v", err)
		return result
	}

	result.Imported = len(transactions)

	s.logger.Info("statement file imported",
		"file", file.Name,
		"user_id", userID,
		"imported", result.Imported,
		"skipped", result.Skipped)

	return result
}

// normalizeAndCategorize converts data rows to transactions. Repeat
// descriptions within one file resolve against a per-file cache so the
// engine is consulted once per distinct description.
func (s *statementService) normalizeAndCategorize(userID uuid.UUID, rows [][]string, cm spreadsheet.ColumnMap) ([]models.Transaction, int) {
	now := s.now()
	categoryCache := make(map[string]string)

	transactions := make([]models.Transaction, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		draft, ok := spreadsheet.NormalizeRow(row, cm, now)
		if !ok {
			skipped++
			continue
		}

		cacheKey := NormalizePattern(draft.Description)
		category, cached := categoryCache[cacheKey]
		if !cached {
			category = s.categorizer.CategorizeForImport(userID, draft.Description)
			categoryCache[cacheKey] = category
		}

		transactions = append(transactions, models.Transaction{
			UserID:        userID,
			Date:          draft.Date,
			Description:   draft.Description,
			Amount:        draft.Amount,
			Category:      category,
			PaymentMethod: models.PaymentMethodUnknown,
		})
	}

	return transactions, skipped
}
