package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCell(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  FECHA  ", "fecha"},
		{"strips diacritics", "Descripción", "descripcion"},
		{"strips surrounding quotes", `"Cargos DB"`, "cargos db"},
		{"collapses whitespace", "Fecha   de    Operación", "fecha de operacion"},
		{"empty cell", "", ""},
		{"only whitespace", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeCell(tc.input))
		})
	}
}

func TestResolveColumns_SpanishHeaders(t *testing.T) {
	cm, err := ResolveColumns([]string{"Fecha", "Descripción", "Cargos DB"})
	require.NoError(t, err)

	assert.Equal(t, 0, cm.Date)
	assert.Equal(t, 1, cm.Description)
	assert.Equal(t, 2, cm.Amount)
}

func TestResolveColumns_EnglishHeaders(t *testing.T) {
	cm, err := ResolveColumns([]string{"Date", "Description", "Amount"})
	require.NoError(t, err)

	assert.Equal(t, 0, cm.Date)
	assert.Equal(t, 1, cm.Description)
	assert.Equal(t, 2, cm.Amount)
}

func TestResolveColumns_SpecificAliasBeatsGeneric(t *testing.T) {
	// "fecha" alone appears in an earlier column than "fecha de transaccion";
	// the more specific alias must still win the date slot.
	cm, err := ResolveColumns([]string{"Fecha Corte", "Fecha de Transacción", "Concepto", "Monto"})
	require.NoError(t, err)

	assert.Equal(t, 1, cm.Date)
	assert.Equal(t, 2, cm.Description)
	assert.Equal(t, 3, cm.Amount)
}

func TestResolveColumns_ShuffledOrder(t *testing.T) {
	cm, err := ResolveColumns([]string{"Monto", "Fecha", "Concepto"})
	require.NoError(t, err)

	assert.Equal(t, 1, cm.Date)
	assert.Equal(t, 2, cm.Description)
	assert.Equal(t, 0, cm.Amount)
}

func TestResolveColumns_MissingColumn(t *testing.T) {
	_, err := ResolveColumns([]string{"Fecha", "Descripción"})
	assert.ErrorIs(t, err, ErrColumnsNotFound)
}

func TestResolveColumns_BannerRow(t *testing.T) {
	_, err := ResolveColumns([]string{"Banco Nacional", "", "Estado de Cuenta"})
	assert.ErrorIs(t, err, ErrColumnsNotFound)
}

func TestDetectHeader_SkipsBannerRows(t *testing.T) {
	rows := [][]string{
		{"Banco Nacional de México"},
		{"Estado de Cuenta", "Enero 2024"},
		{"Fecha", "Descripción", "Cargos DB"},
		{"15/01/2024", "WALMART SUPERCENTER", "450.00"},
	}

	header, err := DetectHeader(rows)
	require.NoError(t, err)

	assert.Equal(t, 2, header.Row)
	assert.Equal(t, 0, header.Columns.Date)
	assert.Equal(t, 1, header.Columns.Description)
	assert.Equal(t, 2, header.Columns.Amount)
}

func TestDetectHeader_NotFoundInScanWindow(t *testing.T) {
	rows := make([][]string, 15)
	for i := range rows {
		rows[i] = []string{"filler", "filler", "filler"}
	}
	// A valid header beyond the scan limit must not be found.
	rows[12] = []string{"Fecha", "Descripción", "Monto"}

	_, err := DetectHeader(rows)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestDetectHeader_LastRowOfScanWindow(t *testing.T) {
	rows := make([][]string, 11)
	for i := range rows {
		rows[i] = []string{"filler", "filler", "filler"}
	}
	// Row 9 is the last row the scan covers.
	rows[9] = []string{"Fecha", "Descripción", "Monto"}

	header, err := DetectHeader(rows)
	require.NoError(t, err)
	assert.Equal(t, 9, header.Row)
}

func TestDetectHeader_JustPastScanWindow(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"filler", "filler", "filler"}
	}
	// Row 10 is one past the ten-row scan.
	rows[10] = []string{"Fecha", "Descripción", "Monto"}

	_, err := DetectHeader(rows)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestDetectHeader_EmptySheet(t *testing.T) {
	_, err := DetectHeader(nil)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}
