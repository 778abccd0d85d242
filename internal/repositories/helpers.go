package repositories

import (
	"github.com/shopspring/decimal"
)

// decimalFromSQL parses an aggregate value scanned as text. Different
// drivers render SUM results differently (integer, float, numeric text),
// so parsing the string form is the portable path.
func decimalFromSQL(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func decimalFromInt(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}
