package quote

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestLineNetDiscountAndRounding(t *testing.T) {
	it := LineItem{Qty: 3, UnitPrice: 10.005, DiscountPct: fp(10), VatRate: fp(20)}
	if got := LineNet(it); got != 27.01 {
		t.Fatalf("LineNet = %v, want 27.01", got)
	}
	if got := LineVat(it); got != 5.40 {
		t.Fatalf("LineVat = %v, want 5.40", got)
	}
	if got := LineGross(it); got != 32.41 {
		t.Fatalf("LineGross = %v, want 32.41", got)
	}
}

func TestLineVatMissingRateIsZero(t *testing.T) {
	it := LineItem{Qty: 2, UnitPrice: 9.99}
	if got := LineVat(it); got != 0 {
		t.Fatalf("LineVat = %v, want 0", got)
	}
	if LineGross(it) != LineNet(it) {
		t.Fatalf("gross %v != net %v without a rate", LineGross(it), LineNet(it))
	}
}

func TestLineTotalFollowsMode(t *testing.T) {
	it := LineItem{Qty: 1, UnitPrice: 100, VatRate: fp(20)}
	if got := LineTotal(it, WithoutVat); got != 100 {
		t.Fatalf("LineTotal without VAT = %v, want 100", got)
	}
	if got := LineTotal(it, WithVat); got != 120 {
		t.Fatalf("LineTotal with VAT = %v, want 120", got)
	}
}

func TestNegativeCreditLinesAllowed(t *testing.T) {
	it := LineItem{Qty: -2, UnitPrice: 10, VatRate: fp(20)}
	if got := LineNet(it); got != -20 {
		t.Fatalf("LineNet = %v, want -20", got)
	}
	if got := LineGross(it); got != -24 {
		t.Fatalf("LineGross = %v, want -24", got)
	}
}

func TestQuoteTotalSumsRoundedLines(t *testing.T) {
	items := []LineItem{
		{Qty: 1, UnitPrice: 100, VatRate: fp(20)},
		{Qty: 1, UnitPrice: 50},
	}
	if got := QuoteTotal(items, WithoutVat); got != 150 {
		t.Fatalf("QuoteTotal without VAT = %v, want 150", got)
	}
	if got := QuoteTotal(items, WithVat); got != 170 {
		t.Fatalf("QuoteTotal with VAT = %v, want 170", got)
	}
}

func TestVatSummaryGroupsAndOrder(t *testing.T) {
	items := []LineItem{
		{Qty: 1, UnitPrice: 100, VatRate: fp(20)},
		{Qty: 1, UnitPrice: 50, VatRate: fp(0)},
	}
	rows := VatSummary(items)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].VatRate != 20 || rows[1].VatRate != 0 {
		t.Fatalf("rows not sorted by rate descending: %+v", rows)
	}
	if rows[0].Base != 100 || rows[0].Vat != 20 || rows[0].Total != 120 {
		t.Fatalf("unexpected 20%% row: %+v", rows[0])
	}
	if rows[1].Base != 50 || rows[1].Vat != 0 || rows[1].Total != 50 {
		t.Fatalf("unexpected 0%% row: %+v", rows[1])
	}
}

func TestVatSummaryMissingRateJoinsZeroGroup(t *testing.T) {
	items := []LineItem{
		{Qty: 1, UnitPrice: 10},
		{Qty: 1, UnitPrice: 20, VatRate: fp(0)},
	}
	rows := VatSummary(items)
	if len(rows) != 1 {
		t.Fatalf("expected a single 0%% group, got %+v", rows)
	}
	if rows[0].VatRate != 0 || rows[0].Base != 30 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestVatSummaryFootsToQuoteTotal(t *testing.T) {
	items := []LineItem{
		{Qty: 3, UnitPrice: 10.005, DiscountPct: fp(10), VatRate: fp(20)},
		{Qty: 7, UnitPrice: 0.333, VatRate: fp(20)},
		{Qty: 2, UnitPrice: 19.995, VatRate: fp(10)},
		{Qty: 1, UnitPrice: 12.345},
		{Qty: -1, UnitPrice: 5.555, VatRate: fp(10)},
	}
	var sum float64
	for _, row := range VatSummary(items) {
		sum += row.Total
	}
	total := QuoteTotal(items, WithVat)
	if math.Abs(sum-total) > 1e-9 {
		t.Fatalf("summary foots to %v, quote total is %v", sum, total)
	}
}

func TestGrossEqualsRoundedNetPlusVat(t *testing.T) {
	items := []LineItem{
		{Qty: 1.5, UnitPrice: 3.333, VatRate: fp(23)},
		{Qty: 0.25, UnitPrice: 99.99, DiscountPct: fp(33), VatRate: fp(20)},
		{Qty: 4, UnitPrice: 7.777},
	}
	for i, it := range items {
		want := LineNet(it) + LineVat(it)
		if math.Abs(LineGross(it)-want) > 1e-9 {
			t.Fatalf("item %d: gross %v != net+vat %v", i, LineGross(it), want)
		}
	}
}
