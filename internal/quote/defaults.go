package quote

import (
	"time"

	"github.com/google/uuid"
)

const isoDate = "2006-01-02"

// Defaults carries the configured default values used to create fresh
// drafts and to repair loaded ones. Now and NewID are injectable so
// tests stay deterministic; nil falls back to the wall clock and
// random UUIDs.
type Defaults struct {
	Number       string
	ValidityDays int
	Currency     Currency
	VatRate      float64
	Unit         string
	Country      string

	Now   func() time.Time
	NewID func() string
}

func (d Defaults) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NextID returns a fresh line-item identifier.
func (d Defaults) NextID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

// NewItem returns the blank line item a fresh draft starts with: one
// unit of nothing at the default VAT rate.
func (d Defaults) NewItem() LineItem {
	rate := d.VatRate
	return LineItem{
		ID:      d.NextID(),
		Qty:     1,
		Unit:    d.Unit,
		VatRate: &rate,
	}
}

// NewDraft builds the default draft used on first load and after reset.
func (d Defaults) NewDraft() Draft {
	today := d.now()
	return Draft{
		Number:     d.Number,
		CreatedAt:  today.Format(isoDate),
		ValidUntil: today.AddDate(0, 0, d.ValidityDays).Format(isoDate),
		Currency:   d.Currency,
		VatMode:    WithoutVat,
		Customer:   Party{Country: d.Country},
		Items:      []LineItem{d.NewItem()},
		View:       DefaultView(),
	}
}

// DefaultView returns the default visibility flags.
func DefaultView() ViewSettings {
	return ViewSettings{
		ShowIco:     true,
		ShowIcdph:   true,
		ShowCountry: true,
	}
}
