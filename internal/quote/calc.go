package quote

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/agropuls/backend-quote/internal/money"
)

var hundred = decimal.NewFromInt(100)

// LineNet returns the discounted tax-exclusive amount of the item,
// rounded to two decimals. Missing discount means no discount.
func LineNet(it LineItem) float64 {
	qty := decimal.NewFromFloat(it.Qty)
	price := decimal.NewFromFloat(it.UnitPrice)
	pct := decimal.Zero
	if it.DiscountPct != nil {
		pct = decimal.NewFromFloat(*it.DiscountPct)
	}
	net := qty.Mul(price).Mul(hundred.Sub(pct)).Div(hundred)
	return money.Float(money.Round2(net))
}

// LineVat returns the VAT amount of the item, computed on the already
// rounded net. A missing VAT rate counts as 0.
func LineVat(it LineItem) float64 {
	rate := decimal.Zero
	if it.VatRate != nil {
		rate = decimal.NewFromFloat(*it.VatRate)
	}
	vat := decimal.NewFromFloat(LineNet(it)).Mul(rate).Div(hundred)
	return money.Float(money.Round2(vat))
}

// LineGross returns net plus VAT, rounded to two decimals.
func LineGross(it LineItem) float64 {
	sum := decimal.NewFromFloat(LineNet(it)).Add(decimal.NewFromFloat(LineVat(it)))
	return money.Float(money.Round2(sum))
}

// LineTotal returns the figure used for summation under the given mode:
// gross when the document is tax-inclusive, net otherwise.
func LineTotal(it LineItem, mode VatMode) float64 {
	if mode == WithVat {
		return LineGross(it)
	}
	return LineNet(it)
}

// QuoteTotal sums the already-rounded per-line totals and rounds once
// more, which is idempotent on two-decimal inputs.
func QuoteTotal(items []LineItem, mode VatMode) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(LineTotal(it, mode)))
	}
	return money.Float(money.Round2(sum))
}

// VatSummary groups items by VAT rate and folds each group into base,
// VAT, and gross totals. Rate 0 is a distinct group; a missing rate
// belongs to it. Every accumulation is rounded to two decimals so the
// rows always foot to QuoteTotal under WithVat. Rows are ordered by
// rate descending; that ordering is a presentation contract.
func VatSummary(items []LineItem) []VatSummaryRow {
	type accum struct {
		base  decimal.Decimal
		vat   decimal.Decimal
		total decimal.Decimal
	}
	groups := make(map[float64]*accum)
	for _, it := range items {
		rate := 0.0
		if it.VatRate != nil {
			rate = *it.VatRate
		}
		g := groups[rate]
		if g == nil {
			g = &accum{}
			groups[rate] = g
		}
		net := decimal.NewFromFloat(LineNet(it))
		vat := decimal.NewFromFloat(LineVat(it))
		g.base = money.Round2(g.base.Add(net))
		g.vat = money.Round2(g.vat.Add(vat))
		g.total = money.Round2(g.total.Add(net.Add(vat)))
	}

	rows := make([]VatSummaryRow, 0, len(groups))
	for rate, g := range groups {
		rows = append(rows, VatSummaryRow{
			VatRate: rate,
			Base:    money.Float(g.base),
			Vat:     money.Float(g.vat),
			Total:   money.Float(g.total),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].VatRate > rows[j].VatRate })
	return rows
}
