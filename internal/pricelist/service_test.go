package pricelist

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agropuls/backend-quote/internal/store"
)

func testService() *Service {
	seq := 0
	return &Service{
		Docs:     store.Docs{KV: store.NewMemoryKV(), Log: zerolog.Nop()},
		Defaults: DefaultItems("ks", 20),
		NewID: func() string {
			seq++
			return "pl-" + strconv.Itoa(seq)
		},
	}
}

func TestListSeedsDefaultsOnFirstLoad(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	items := svc.List(ctx)
	if len(items) != 2 {
		t.Fatalf("expected 2 seeded entries, got %d", len(items))
	}
	if items[0].Name != "Služba A" || items[0].UnitPrice != 50 || items[0].Sku != "S-A" {
		t.Fatalf("unexpected first entry: %+v", items[0])
	}
	if items[1].Name != "Materiál B" || items[1].UnitPrice != 12.50 || items[1].Sku != "M-B" {
		t.Fatalf("unexpected second entry: %+v", items[1])
	}
	for _, it := range items {
		if it.ID == "" {
			t.Fatalf("seeded entry missing id: %+v", it)
		}
	}

	// Seeding is persisted: a second load yields the same identities.
	again := svc.List(ctx)
	if again[0].ID != items[0].ID || again[1].ID != items[1].ID {
		t.Fatalf("seeded ids not stable: %+v vs %+v", again, items)
	}
}

func TestReplaceAssignsMissingIDs(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	replaced := svc.Replace(ctx, []Item{
		{Sku: "DOP", Name: "Doprava", Unit: "km", UnitPrice: 0.80, VatRate: 20},
		{ID: "keep-me", Name: "Montáž", Unit: "h", UnitPrice: 35, VatRate: 20},
	})
	if replaced[0].ID == "" {
		t.Fatal("missing id not assigned")
	}
	if replaced[1].ID != "keep-me" {
		t.Fatalf("existing id rewritten: %q", replaced[1].ID)
	}

	items := svc.List(ctx)
	if len(items) != 2 || items[0].Name != "Doprava" {
		t.Fatalf("replacement not persisted: %+v", items)
	}
	if items[0].Sku != "DOP" {
		t.Fatalf("sku lost on replace round trip: %+v", items[0])
	}
	if items[1].Sku != "" {
		t.Fatalf("absent sku should stay absent: %+v", items[1])
	}
}

func TestEmptyReplaceReseedsOnNextLoad(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	svc.Replace(ctx, nil)
	items := svc.List(ctx)
	if len(items) != 2 {
		t.Fatalf("empty list should reseed defaults, got %d entries", len(items))
	}
}

func TestFind(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	items := svc.List(ctx)
	got, ok := svc.Find(ctx, items[1].ID)
	if !ok || got.Name != items[1].Name {
		t.Fatalf("Find(%q) = %+v %v", items[1].ID, got, ok)
	}
	if _, ok := svc.Find(ctx, "nope"); ok {
		t.Fatal("unknown id should not resolve")
	}
}

func TestResetDropsPersistedList(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	svc.Replace(ctx, []Item{{Name: "Custom", Unit: "ks", UnitPrice: 1, VatRate: 20}})
	svc.Reset(ctx)
	items := svc.List(ctx)
	if len(items) != 2 || items[0].Name != "Služba A" {
		t.Fatalf("reset should restore defaults, got %+v", items)
	}
}
