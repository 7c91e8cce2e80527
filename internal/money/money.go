package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two fractional digits, half away from zero.
// Every derived figure is rounded at its own aggregation boundary so a
// printed breakdown always foots exactly to its displayed total.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Float converts a decimal amount back to its float representation.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Format renders an amount with exactly two decimals followed by the
// currency code, e.g. "27.01 EUR". An empty currency yields the bare amount.
func Format(v float64, currency string) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
