package models

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for amounts of money.
const MoneyScale = 2

// ValidMoney reports if all amounts can be stored without rounding.
// Trailing zeros beyond the scale are accepted, "10.100" is 10.10.
func ValidMoney(amounts ...decimal.Decimal) bool {
	for _, a := range amounts {
		if !a.Equal(a.Round(MoneyScale)) {
			return false
		}
	}

	return true
}
