// Package pricelist manages the reusable catalog of priced entries a
// quote can be seeded from.
package pricelist

import (
	"context"

	"github.com/google/uuid"

	"github.com/agropuls/backend-quote/internal/store"
)

// Key is the persisted document key for the price list.
const Key = "quote:pricelist"

// Item is a reusable catalog entry. Unlike a draft line item it carries
// no quantity; seeding a quote from it always starts at one unit.
type Item struct {
	ID          string  `json:"id"`
	Sku         string  `json:"sku,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	VatRate     float64 `json:"vatRate"`
}

// Service loads and replaces the price list. Defaults are seeded on
// first load; NewID is injectable for deterministic tests.
type Service struct {
	Docs     store.Docs
	Defaults []Item
	NewID    func() string
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// DefaultItems returns the catalog a fresh installation starts with.
func DefaultItems(unit string, vatRate float64) []Item {
	return []Item{
		{Sku: "S-A", Name: "Služba A", Unit: unit, UnitPrice: 50, VatRate: vatRate},
		{Sku: "M-B", Name: "Materiál B", Unit: unit, UnitPrice: 12.50, VatRate: vatRate},
	}
}

// List returns the current price list. An absent or empty document is
// seeded with the defaults; entries lacking an identifier get a fresh
// one, and any repair is persisted.
func (s *Service) List(ctx context.Context) []Item {
	var items []Item
	loaded := s.Docs.Load(ctx, Key, &items)
	repaired := false
	if !loaded || len(items) == 0 {
		items = append([]Item(nil), s.Defaults...)
		repaired = true
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID()
			repaired = true
		}
	}
	if repaired {
		s.Docs.Save(ctx, Key, items)
	}
	return items
}

// Replace persists the given entries wholesale, assigning identifiers
// to entries that lack one. An empty replacement is allowed; the next
// List reseeds the defaults.
func (s *Service) Replace(ctx context.Context, items []Item) []Item {
	out := append([]Item(nil), items...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = s.newID()
		}
	}
	s.Docs.Save(ctx, Key, out)
	return out
}

// Find returns the entry with the given id.
func (s *Service) Find(ctx context.Context, id string) (Item, bool) {
	for _, it := range s.List(ctx) {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Reset removes the persisted document so the next load reseeds the
// defaults.
func (s *Service) Reset(ctx context.Context) {
	s.Docs.Remove(ctx, Key)
}
