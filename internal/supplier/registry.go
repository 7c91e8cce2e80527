// Package supplier maintains the set of supplier profiles and the
// pointer to the one currently used on the document. Two invariants
// hold after every operation: the set is never empty, and the active
// pointer always resolves to a member.
package supplier

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/agropuls/backend-quote/internal/quote"
)

// Set is the persisted supplier state. Order is display order.
type Set struct {
	Suppliers []quote.Party `json:"suppliers"`
	ActiveID  string        `json:"activeId"`
}

// Active returns the member ActiveID points at.
func (s Set) Active() (quote.Party, bool) {
	for _, p := range s.Suppliers {
		if p.ID == s.ActiveID {
			return p, true
		}
	}
	return quote.Party{}, false
}

// Registry repairs and mutates supplier sets. NewID is injectable for
// deterministic tests; nil means random UUIDs. Defaults is the profile
// seeded when the set is empty on first load.
type Registry struct {
	NewID    func() string
	Defaults quote.Party
}

func (r Registry) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

func (r Registry) uniqueID(s Set) string {
	id := r.newID()
	for hasID(s, id) {
		id = r.newID()
	}
	return id
}

func hasID(s Set, id string) bool {
	for _, p := range s.Suppliers {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Normalize repairs a loaded set: an empty collection is replaced with
// the default supplier, members lacking an identifier get a fresh one,
// and a dangling active pointer is moved to the first member. It is
// idempotent.
func (r Registry) Normalize(s Set) Set {
	out := Set{
		Suppliers: append([]quote.Party(nil), s.Suppliers...),
		ActiveID:  s.ActiveID,
	}
	if len(out.Suppliers) == 0 {
		def := r.Defaults
		if def.ID == "" {
			def.ID = r.newID()
		}
		out.Suppliers = []quote.Party{def}
	}
	for i := range out.Suppliers {
		if out.Suppliers[i].ID == "" {
			out.Suppliers[i].ID = r.uniqueID(out)
		}
	}
	if !hasID(out, out.ActiveID) {
		out.ActiveID = out.Suppliers[0].ID
	}
	return out
}

// Add appends a blank supplier with a fresh unique identity and makes
// it active. The collection length strictly increases by one.
func (r Registry) Add(s Set) Set {
	out := r.Normalize(s)
	member := quote.Party{ID: r.uniqueID(out)}
	out.Suppliers = append(out.Suppliers, member)
	out.ActiveID = member.ID
	return out
}

// Remove deletes the member with the given id. Removing the last member
// or an unknown id is rejected and the set returned unchanged. When the
// removed member was active, the first remaining member becomes active.
func (r Registry) Remove(s Set, id string) (Set, bool) {
	out := r.Normalize(s)
	if len(out.Suppliers) <= 1 || !hasID(out, id) {
		return out, false
	}
	kept := make([]quote.Party, 0, len(out.Suppliers)-1)
	for _, p := range out.Suppliers {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	out.Suppliers = kept
	if out.ActiveID == id {
		out.ActiveID = out.Suppliers[0].ID
	}
	return out, true
}

// Activate points ActiveID at the member with the given id. Unknown ids
// are rejected.
func (r Registry) Activate(s Set, id string) (Set, bool) {
	out := r.Normalize(s)
	if !hasID(out, id) {
		return out, false
	}
	out.ActiveID = id
	return out, true
}

// UpdateActive applies the patch to the active member, leaving identity
// and unpatched fields untouched. Without a resolvable active reference
// the set is returned unchanged.
func (r Registry) UpdateActive(s Set, patch quote.PartyPatch) Set {
	out := Set{
		Suppliers: append([]quote.Party(nil), s.Suppliers...),
		ActiveID:  s.ActiveID,
	}
	for i, p := range out.Suppliers {
		if p.ID == out.ActiveID {
			id := p.ID
			updated := patch.Apply(p)
			updated.ID = id
			out.Suppliers[i] = updated
			return out
		}
	}
	return out
}

// NormalizeSet decodes the two persisted values and repairs the result.
func (r Registry) NormalizeSet(rawSuppliers, rawActive []byte) Set {
	return r.Normalize(DecodeSet(rawSuppliers, rawActive))
}

// DecodeSet leniently decodes the two persisted values (supplier list
// and active pointer). Malformed members collapse to defaults field by
// field; a malformed list yields an empty set for Normalize to repair.
func DecodeSet(rawSuppliers, rawActive []byte) Set {
	var out Set
	if len(rawSuppliers) > 0 {
		var members []json.RawMessage
		if err := json.Unmarshal(rawSuppliers, &members); err == nil {
			out.Suppliers = make([]quote.Party, 0, len(members))
			for _, raw := range members {
				out.Suppliers = append(out.Suppliers, quote.NormalizeParty(raw, quote.Party{}))
			}
		}
	}
	if len(rawActive) > 0 {
		var id string
		if err := json.Unmarshal(rawActive, &id); err == nil {
			out.ActiveID = id
		}
	}
	return out
}
