package services

import (
	"regexp"
	"strings"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/spreadsheet"

	"github.com/shopspring/decimal"
)

var (
	receiptDatePattern   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})\b`)
	receiptAmountPattern = regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})`)
	receiptTotalPattern  = regexp.MustCompile(`(?i)\b(total|importe|monto)\b`)
)

// receiptExtractionService implements ReceiptExtractionServiceInterface:
// it mines merchant, date and amount candidates out of raw OCR text so a
// receipt can be turned into a transaction draft.
type receiptExtractionService struct{}

// NewReceiptExtractionService creates a new receipt extraction service
func NewReceiptExtractionService() ReceiptExtractionServiceInterface {
	return &receiptExtractionService{}
}

// Extract pulls what it can from the OCR text. Missing fields stay empty;
// the caller decides what to do with a partial extraction.
func (s *receiptExtractionService) Extract(ocrText string) *dto.ReceiptExtractionResponse {
	result := &dto.ReceiptExtractionResponse{}
	if strings.TrimSpace(ocrText) == "" {
		return result
	}

	lines := splitNonEmptyLines(ocrText)

	// The merchant name is almost always the first printed line.
	if len(lines) > 0 {
		result.Merchant = lines[0]
	}

	if match := receiptDatePattern.FindString(ocrText); match != "" {
		parsed := spreadsheet.ParseDate(match, time.Now())
		result.Date = parsed.Format("2006-01-02")
	}

	if amount, ok := extractReceiptAmount(lines); ok {
		result.Amount = amount.StringFixed(2)
	}

	return result
}

// extractReceiptAmount prefers an amount on a line labelled as a total;
// failing that, the largest amount on the receipt is the best guess.
func extractReceiptAmount(lines []string) (decimal.Decimal, bool) {
	var largest decimal.Decimal
	found := false

	for _, line := range lines {
		matches := receiptAmountPattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		isTotalLine := receiptTotalPattern.MatchString(line)

		for _, match := range matches {
			amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
			if err != nil {
				continue
			}

			if isTotalLine {
				return amount, true
			}
			if !found || amount.GreaterThan(largest) {
				largest = amount
				found = true
			}
		}
	}

	return largest, found
}

func splitNonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
