package supplier

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/agropuls/backend-quote/internal/quote"
)

func testRegistry() Registry {
	seq := 0
	return Registry{
		NewID: func() string {
			seq++
			return "s-" + strconv.Itoa(seq)
		},
		Defaults: quote.Party{Name: "Agropuls s.r.o", City: "Trebišov", Country: "Slovensko"},
	}
}

func TestNormalizeEmptySetSeedsDefault(t *testing.T) {
	r := testRegistry()
	got := r.Normalize(Set{})
	if len(got.Suppliers) != 1 {
		t.Fatalf("expected the default supplier, got %+v", got.Suppliers)
	}
	if got.Suppliers[0].Name != "Agropuls s.r.o" || got.Suppliers[0].ID == "" {
		t.Fatalf("default supplier not seeded: %+v", got.Suppliers[0])
	}
	if got.ActiveID != got.Suppliers[0].ID {
		t.Fatalf("active pointer not repaired: %q", got.ActiveID)
	}
}

func TestNormalizeRepairsIdsAndDanglingActive(t *testing.T) {
	r := testRegistry()
	in := Set{
		Suppliers: []quote.Party{{Name: "A"}, {ID: "b", Name: "B"}},
		ActiveID:  "nobody",
	}
	got := r.Normalize(in)
	if got.Suppliers[0].ID == "" {
		t.Fatal("member without id not assigned one")
	}
	if got.Suppliers[1].ID != "b" {
		t.Fatalf("existing id rewritten: %+v", got.Suppliers[1])
	}
	if got.ActiveID != got.Suppliers[0].ID {
		t.Fatalf("dangling active not moved to first member: %q", got.ActiveID)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	r := testRegistry()
	once := r.Normalize(Set{Suppliers: []quote.Party{{Name: "A"}}, ActiveID: "x"})
	twice := r.Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestAddGrowsByOneAndActivates(t *testing.T) {
	r := testRegistry()
	s := r.Normalize(Set{})
	before := len(s.Suppliers)
	s = r.Add(s)
	if len(s.Suppliers) != before+1 {
		t.Fatalf("length %d, want %d", len(s.Suppliers), before+1)
	}
	added := s.Suppliers[len(s.Suppliers)-1]
	if s.ActiveID != added.ID {
		t.Fatalf("new member not active: %q vs %q", s.ActiveID, added.ID)
	}
	seen := map[string]bool{}
	for _, p := range s.Suppliers {
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestRemoveLastSupplierRejected(t *testing.T) {
	r := testRegistry()
	s := r.Normalize(Set{})
	got, ok := r.Remove(s, s.ActiveID)
	if ok {
		t.Fatal("removing the only supplier must be rejected")
	}
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("set changed by rejected removal: %+v", got)
	}
}

func TestRemoveActiveActivatesFirst(t *testing.T) {
	r := testRegistry()
	s := r.Add(r.Normalize(Set{}))
	removedID := s.ActiveID
	got, ok := r.Remove(s, removedID)
	if !ok {
		t.Fatal("removal should succeed with two members")
	}
	if len(got.Suppliers) != 1 {
		t.Fatalf("expected 1 member, got %d", len(got.Suppliers))
	}
	if got.ActiveID != got.Suppliers[0].ID {
		t.Fatalf("active not moved to first member: %q", got.ActiveID)
	}
	if _, ok := got.Active(); !ok {
		t.Fatal("active pointer does not resolve")
	}
}

func TestActivePointerAlwaysResolves(t *testing.T) {
	r := testRegistry()
	s := r.Normalize(Set{})
	for i := 0; i < 5; i++ {
		s = r.Add(s)
	}
	for len(s.Suppliers) > 1 {
		var next Set
		var ok bool
		next, ok = r.Remove(s, s.Suppliers[0].ID)
		if !ok {
			t.Fatalf("removal unexpectedly rejected at size %d", len(s.Suppliers))
		}
		s = next
		if _, ok := s.Active(); !ok {
			t.Fatalf("active %q does not resolve in %+v", s.ActiveID, s.Suppliers)
		}
	}
}

func TestUpdateActivePatchesOnlyPresentFields(t *testing.T) {
	r := testRegistry()
	s := r.Normalize(Set{})
	name := "Nová Firma s.r.o."
	s = r.UpdateActive(s, quote.PartyPatch{Name: &name})
	active, ok := s.Active()
	if !ok {
		t.Fatal("active pointer lost")
	}
	if active.Name != name {
		t.Fatalf("name not patched: %q", active.Name)
	}
	if active.City != "Trebišov" || active.Country != "Slovensko" {
		t.Fatalf("unpatched fields touched: %+v", active)
	}
}

func TestUpdateActiveNoopWithoutActive(t *testing.T) {
	r := testRegistry()
	in := Set{Suppliers: []quote.Party{{ID: "a", Name: "A"}}, ActiveID: "missing"}
	name := "changed"
	got := r.UpdateActive(in, quote.PartyPatch{Name: &name})
	if got.Suppliers[0].Name != "A" {
		t.Fatalf("update applied despite dangling active: %+v", got.Suppliers[0])
	}
}

func TestDecodeSetLenient(t *testing.T) {
	got := DecodeSet([]byte(`[{"id":"a","name":"A","ico":123},{"name":"B"}]`), []byte(`"a"`))
	if len(got.Suppliers) != 2 {
		t.Fatalf("expected 2 members, got %+v", got.Suppliers)
	}
	if got.Suppliers[0].Ico != "" {
		t.Fatalf("malformed ico not dropped: %q", got.Suppliers[0].Ico)
	}
	if got.ActiveID != "a" {
		t.Fatalf("active pointer = %q", got.ActiveID)
	}
	if got := DecodeSet([]byte(`{"not":"a list"}`), nil); len(got.Suppliers) != 0 {
		t.Fatalf("malformed list should decode empty, got %+v", got.Suppliers)
	}
}
