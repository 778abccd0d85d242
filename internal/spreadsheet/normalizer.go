package spreadsheet

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// excelEpochOffsetDays is the day count between the spreadsheet serial
// epoch (1899-12-30) and the Unix epoch (1970-01-01). Serial date cells
// arrive as raw numbers when the sheet is read without cell formatting.
const excelEpochOffsetDays = 25569

const secondsPerDay = 86400

var ErrUnparsableAmount = errors.New("amount cell could not be parsed")

var amountJunkStripper = regexp.MustCompile(`[^0-9.\-]`)

// Draft is a single statement row normalized into typed fields, before
// categorization assigns it a category.
type Draft struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// standardDateLayouts are tried verbatim before the day-first fallback.
// Slash and dash numeric forms are deliberately absent: those are always
// interpreted day-first by parseDayFirst, since the bank exports this
// pipeline targets use D/M/Y ordering.
var standardDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

var dayFirstSplitter = regexp.MustCompile(`[/\-.]`)

// ParseAmount extracts a decimal value from an amount cell, tolerating
// currency symbols, thousands separators and stray whitespace.
func ParseAmount(cell string) (decimal.Decimal, error) {
	cleaned := amountJunkStripper.ReplaceAllString(cell, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, ErrUnparsableAmount
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrUnparsableAmount
	}

	return amount, nil
}

// ParseDate converts a date cell into a time.Time. Resolution order:
// spreadsheet serial numbers, standard textual layouts, day-first
// numeric dates. Anything else falls back to today so one malformed
// date does not sink the whole statement.
func ParseDate(cell string, now time.Time) time.Time {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return truncateToDate(now)
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return serialToDate(serial)
	}

	for _, layout := range standardDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return truncateToDate(parsed)
		}
	}

	if parsed, ok := parseDayFirst(trimmed); ok {
		return parsed
	}

	return truncateToDate(now)
}

// serialToDate converts a spreadsheet serial day number into a UTC date.
func serialToDate(serial float64) time.Time {
	unixSeconds := int64((serial - excelEpochOffsetDays) * secondsPerDay)
	return truncateToDate(time.Unix(unixSeconds, 0).UTC())
}

// parseDayFirst handles numeric D/M/Y dates split on slash, dash or dot.
// Two-digit years are assumed to be in the 2000s.
func parseDayFirst(s string) (time.Time, bool) {
	parts := dayFirstSplitter.Split(s, -1)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	if year < 100 {
		year += 2000
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeRow turns one data row into a Draft using the resolved column
// map. It returns ok=false for rows that carry no transaction: blank
// lines, subtotal rows with no description, or rows whose amount cannot
// be read.
func NormalizeRow(row []string, cm ColumnMap, now time.Time) (Draft, bool) {
	description := strings.TrimSpace(cellAt(row, cm.Description))
	amountCell := cellAt(row, cm.Amount)

	amount, err := ParseAmount(amountCell)
	if err != nil {
		return Draft{}, false
	}

	// A zero amount with no description is filler, not a transaction.
	if amount.IsZero() && description == "" {
		return Draft{}, false
	}

	if description == "" {
		return Draft{}, false
	}

	return Draft{
		Date:        ParseDate(cellAt(row, cm.Date), now),
		Description: description,
		Amount:      amount,
	}, true
}

// cellAt reads a cell defensively: short rows are common in real exports
// because trailing empty cells get dropped by the reader.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
