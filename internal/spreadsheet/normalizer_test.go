package spreadsheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number", "450.00", "450"},
		{"currency symbol", "$1,234.56", "1234.56"},
		{"negative", "-89.90", "-89.9"},
		{"peso notation", "MXN 2,500.00", "2500"},
		{"whitespace", "  75.25  ", "75.25"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := ParseAmount(tc.input)
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, amount)
		})
	}
}

func TestParseAmount_Unparsable(t *testing.T) {
	for _, input := range []string{"", "   ", "-", ".", "N/A", "--"} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrUnparsableAmount, "input %q", input)
	}
}

func TestParseDate_SerialNumber(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Serial 45292 is 2024-01-01 in the 1900 date system.
	parsed := ParseDate("45292", now)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseDate_StandardLayouts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		input    string
		expected time.Time
	}{
		{"2024-04-15", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-04-15 10:30:00", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"Apr 15, 2024", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"15 Apr 2024", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ParseDate(tc.input, now), "input %q", tc.input)
	}
}

func TestParseDate_DayFirst(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		input    string
		expected time.Time
	}{
		// Always day-first, even when the value would also parse as M/D/Y.
		{"15/04/2024", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"03/04/2024", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"15-04-2024", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"15.04.2024", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{"15/04/24", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ParseDate(tc.input, now), "input %q", tc.input)
	}
}

func TestParseDate_FallsBackToToday(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"", "not a date", "99/99/2024", "pending"} {
		assert.Equal(t, today, ParseDate(input, now), "input %q", input)
	}
}

func TestNormalizeRow(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cm := ColumnMap{Date: 0, Description: 1, Amount: 2}

	draft, ok := NormalizeRow([]string{"15/04/2024", "WALMART SUPERCENTER", "-450.00"}, cm, now)
	require.True(t, ok)

	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), draft.Date)
	assert.Equal(t, "WALMART SUPERCENTER", draft.Description)
	assert.True(t, draft.Amount.Equal(decimal.RequireFromString("-450")))
}

func TestNormalizeRow_SkipsNonTransactions(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cm := ColumnMap{Date: 0, Description: 1, Amount: 2}

	testCases := []struct {
		name string
		row  []string
	}{
		{"unparsable amount", []string{"15/04/2024", "WALMART", "pending"}},
		{"zero amount blank description", []string{"15/04/2024", "", "0.00"}},
		{"blank description", []string{"15/04/2024", "   ", "100.00"}},
		{"empty row", []string{"", "", ""}},
		{"short row", []string{"15/04/2024"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := NormalizeRow(tc.row, cm, now)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeRow_ZeroAmountWithDescriptionKept(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cm := ColumnMap{Date: 0, Description: 1, Amount: 2}

	draft, ok := NormalizeRow([]string{"15/04/2024", "FEE WAIVED", "0.00"}, cm, now)
	require.True(t, ok)
	assert.True(t, draft.Amount.IsZero())
}
