package services

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is prefixed to amounts when no currency is configured.
const DefaultCurrencySymbol = "€"

// Dec converts a stored float into a decimal using the shortest
// representation that round-trips, so 12.5 becomes exactly 12.5.
func Dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Round2 rounds an amount to cents. Only presentation code calls this;
// sums are always accumulated at full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Float2 returns the amount rounded to cents as a float64 for JSON payloads
// and spreadsheet cells.
func Float2(d decimal.Decimal) float64 {
	return Round2(d).InexactFloat64()
}

// FormatAmount formats d with exactly 2 decimal places and no symbol.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatMoney formats d with exactly 2 decimal places, prefixed with symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// FormatQty returns whole quantities without decimals and fractional ones
// with 2 decimal places.
func FormatQty(qty decimal.Decimal) string {
	if qty.Equal(qty.Truncate(0)) {
		return qty.StringFixed(0)
	}
	return qty.StringFixed(2)
}
