package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

// stubCategorizer is an inline stub for CategorizerServiceInterface so the
// ingestion tests control categorization without a database.
type stubCategorizer struct {
	categorizeFunc func(userID uuid.UUID, description string) string
	calls          int
}

func (c *stubCategorizer) Suggest(userID uuid.UUID, description string) (string, string) {
	return models.CategoryShopping, SuggestionSourceFallback
}

func (c *stubCategorizer) CategorizeForImport(userID uuid.UUID, description string) string {
	c.calls++
	if c.categorizeFunc != nil {
		return c.categorizeFunc(userID, description)
	}
	return models.CategoryOther
}

func (c *stubCategorizer) KeywordCategory(description string) (string, bool) {
	return "", false
}

// stubMetricsRecorder records metric calls in memory. The real Prometheus
// recorder registers collectors globally, which repeated test construction
// would trip over.
type stubMetricsRecorder struct {
	counters map[string]int
	gauges   map[string]float64
	timings  int
}

func newStubMetricsRecorder() *stubMetricsRecorder {
	return &stubMetricsRecorder{
		counters: make(map[string]int),
		gauges:   make(map[string]float64),
	}
}

func (m *stubMetricsRecorder) IncrementCounter(name string, tags map[string]string) {
	key := name
	if status, ok := tags["status"]; ok {
		key += ":" + status
	}
	m.counters[key]++
}

func (m *stubMetricsRecorder) RecordProcessingTime(name string, duration time.Duration) {
	m.timings++
}

func (m *stubMetricsRecorder) RecordGauge(name string, value float64, tags map[string]string) {
	m.gauges[name] = value
}

type StatementServiceTestSuite struct {
	suite.Suite
	ctrl                *gomock.Controller
	mockTransactionRepo *repository_mocks.MockTransactionRepositoryInterface
	categorizer         *stubCategorizer
	metrics             *stubMetricsRecorder
	service             *statementService
	userID              uuid.UUID
}

func (s *StatementServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTransactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.categorizer = &stubCategorizer{}
	s.metrics = newStubMetricsRecorder()
	s.userID = uuid.New()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewStatementService(s.mockTransactionRepo, s.categorizer, s.metrics, logger).(*statementService)
	s.service.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func (s *StatementServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *StatementServiceTestSuite) buildWorkbook(rows [][]interface{}) []byte {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	s.Require().NoError(err)
	return buf.Bytes()
}

func (s *StatementServiceTestSuite) bankStatement() []byte {
	return s.buildWorkbook([][]interface{}{
		{"Banco Nacional de México"},
		{"Estado de Cuenta", "Enero 2024"},
		{"Fecha", "Descripción", "Cargos DB"},
		{"15/01/2024", "WALMART SUPERCENTER - STORE 2612", "-450.00"},
		{"16/01/2024", "WALMART SUPERCENTER - STORE 2612", "-89.90"},
		{"17/01/2024", "UBER - TRIP 48213", "-120.50"},
		{"", "", "pending"},
	})
}

func (s *StatementServiceTestSuite) TestProcessUploadsImportsFile() {
	s.categorizer.categorizeFunc = func(_ uuid.UUID, description string) string {
		if description == "UBER - TRIP 48213" {
			return models.CategoryTransportation
		}
		return models.CategoryGroceries
	}

	var stored []models.Transaction
	s.mockTransactionRepo.EXPECT().
		CreateBatch(gomock.Any()).
		DoAndReturn(func(transactions []models.Transaction) error {
			stored = transactions
			return nil
		})

	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "enero.xlsx", Data: s.bankStatement()},
	})
	s.Require().NoError(err)

	s.Equal(3, response.TotalImported)
	s.Equal(1, response.TotalSkipped)
	s.Equal(0, response.FailedFiles)
	s.Require().Len(response.Files, 1)
	s.Empty(response.Files[0].Error)

	s.Require().Len(stored, 3)
	s.Equal(s.userID, stored[0].UserID)
	s.Equal("WALMART SUPERCENTER - STORE 2612", stored[0].Description)
	s.Equal(models.CategoryGroceries, stored[0].Category)
	s.Equal(models.CategoryTransportation, stored[2].Category)
	s.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), stored[0].Date)
	s.Equal(models.PaymentMethodUnknown, stored[0].PaymentMethod)

	// Repeat descriptions resolve once against the per-file cache.
	s.Equal(2, s.categorizer.calls)

	s.Equal(1, s.metrics.counters["statement.file.processed:success"])
	s.InDelta(3, s.metrics.gauges["statement.rows.imported"], 0.001)
	s.Equal(1, s.metrics.timings)
}

func (s *StatementServiceTestSuite) TestProcessUploadsFilesFailIndependently() {
	s.mockTransactionRepo.EXPECT().
		CreateBatch(gomock.Any()).
		Return(nil)

	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "broken.xlsx", Data: []byte("this is not a workbook")},
		{Name: "enero.xlsx", Data: s.bankStatement()},
	})
	s.Require().NoError(err)

	s.Require().Len(response.Files, 2)
	s.NotEmpty(response.Files[0].Error)
	s.Zero(response.Files[0].Imported)
	s.Empty(response.Files[1].Error)
	s.Equal(3, response.Files[1].Imported)
	s.Equal(1, response.FailedFiles)
	s.Equal(3, response.TotalImported)

	s.Equal(1, s.metrics.counters["statement.file.processed:failed"])
	s.Equal(1, s.metrics.counters["statement.file.processed:success"])
}

func (s *StatementServiceTestSuite) TestProcessUploadsNoValidRows() {
	data := s.buildWorkbook([][]interface{}{
		{"Fecha", "Descripción", "Monto"},
		{"15/01/2024", "", "0.00"},
		{"16/01/2024", "SOMETHING", "pending"},
	})

	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "empty.xlsx", Data: data},
	})
	s.Require().NoError(err)

	s.Require().Len(response.Files, 1)
	s.Equal("no valid transactions found in the file", response.Files[0].Error)
	s.Equal(2, response.Files[0].Skipped)
	s.Equal(1, response.FailedFiles)
	s.Zero(response.TotalImported)
}

func (s *StatementServiceTestSuite) TestProcessUploadsMissingHeader() {
	data := s.buildWorkbook([][]interface{}{
		{"Resumen de cuenta"},
		{"Saldo inicial", "1000.00"},
	})

	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "summary.xlsx", Data: data},
	})
	s.Require().NoError(err)

	s.Require().Len(response.Files, 1)
	s.NotEmpty(response.Files[0].Error)
	s.Equal(1, response.FailedFiles)
}

func (s *StatementServiceTestSuite) TestProcessUploadsRejectsPDF() {
	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "statement.pdf", Data: []byte("%PDF-1.4")},
	})
	s.Require().NoError(err)

	s.Require().Len(response.Files, 1)
	s.Contains(response.Files[0].Error, "pdf statements are not supported")
}

func (s *StatementServiceTestSuite) TestProcessUploadsStorageFailure() {
	s.mockTransactionRepo.EXPECT().
		CreateBatch(gomock.Any()).
		Return(errors.New("connection reset"))

	response, err := s.service.ProcessUploads(s.userID, []UploadedFile{
		{Name: "enero.xlsx", Data: s.bankStatement()},
	})
	s.Require().NoError(err)

	s.Require().Len(response.Files, 1)
	s.Contains(response.Files[0].Error, "failed to store transactions")
	s.Equal(1, response.FailedFiles)
	s.Zero(response.TotalImported)
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
