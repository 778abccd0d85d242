package spreadsheet

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxHeaderScanRows bounds how deep into the sheet the header search goes.
// Bank exports routinely stack a logo banner and account summary above the
// actual column header row.
const maxHeaderScanRows = 10

var (
	ErrHeaderNotFound  = errors.New("no header row found in the first rows of the sheet")
	ErrColumnsNotFound = errors.New("header row is missing a date, description or amount column")
)

// Column patterns are matched against normalized header cells. Spanish
// aliases come first because the more specific ones ("fecha transaccion")
// must win over the generic "fecha".
var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`fecha.*transaccion`),
		regexp.MustCompile(`fecha.*operacion`),
		regexp.MustCompile(`fecha`),
		regexp.MustCompile(`date`),
	}

	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`descripcion`),
		regexp.MustCompile(`concepto`),
		regexp.MustCompile(`merchant`),
		regexp.MustCompile(`description`),
	}

	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`cargos.*db`),
		regexp.MustCompile(`debito`),
		regexp.MustCompile(`cargo`),
		regexp.MustCompile(`monto`),
		regexp.MustCompile(`amount`),
	}
)

// ColumnMap holds the resolved zero-based column indexes for the three
// required concerns of a statement sheet.
type ColumnMap struct {
	Date        int
	Description int
	Amount      int
}

// HeaderLocation is the result of a successful header scan: which row the
// header sits on and where each required column lives.
type HeaderLocation struct {
	Row     int
	Columns ColumnMap
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

var whitespaceCollapser = regexp.MustCompile(`\s+`)

// NormalizeCell canonicalizes a header cell for pattern matching:
// lowercased, diacritics stripped ("Descripción" -> "descripcion"),
// surrounding quotes removed and internal whitespace collapsed.
func NormalizeCell(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	s = strings.Trim(s, `"'`)
	s = whitespaceCollapser.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// matchColumn returns the index of the first cell matching any of the
// given patterns, or -1. Patterns are tried in priority order so that a
// specific alias beats a generic one even when the generic alias appears
// in an earlier column.
func matchColumn(cells []string, patterns []*regexp.Regexp) int {
	for _, pattern := range patterns {
		for i, cell := range cells {
			if pattern.MatchString(cell) {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns locates the date, description and amount columns within a
// single candidate header row. All three must resolve to distinct columns.
func ResolveColumns(row []string) (ColumnMap, error) {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = NormalizeCell(cell)
	}

	cm := ColumnMap{
		Date:        matchColumn(normalized, datePatterns),
		Description: matchColumn(normalized, descriptionPatterns),
		Amount:      matchColumn(normalized, amountPatterns),
	}

	if cm.Date < 0 || cm.Description < 0 || cm.Amount < 0 {
		return ColumnMap{}, ErrColumnsNotFound
	}

	if cm.Date == cm.Description || cm.Date == cm.Amount || cm.Description == cm.Amount {
		return ColumnMap{}, ErrColumnsNotFound
	}

	return cm, nil
}

// DetectHeader scans the first rows of the sheet for a row that resolves
// all three required columns. Rows above the header (banners, account
// summaries) fail ResolveColumns and are skipped.
func DetectHeader(rows [][]string) (HeaderLocation, error) {
	limit := len(rows)
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}

	for i := 0; i < limit; i++ {
		cm, err := ResolveColumns(rows[i])
		if err != nil {
			continue
		}
		return HeaderLocation{Row: i, Columns: cm}, nil
	}

	return HeaderLocation{}, ErrHeaderNotFound
}
