// Package draft holds the working quote: every read loads the persisted
// document and repairs it through the normalizer, every mutation
// re-persists the whole value and returns the recomputed view.
package draft

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/agropuls/backend-quote/internal/common"
	"github.com/agropuls/backend-quote/internal/money"
	"github.com/agropuls/backend-quote/internal/obs"
	"github.com/agropuls/backend-quote/internal/pricelist"
	"github.com/agropuls/backend-quote/internal/quote"
	"github.com/agropuls/backend-quote/internal/store"
	"github.com/agropuls/backend-quote/internal/supplier"
)

// Persisted document keys.
const (
	DraftKey     = "quote:draft"
	SuppliersKey = "quote:suppliers"
	ActiveKey    = "quote:supplier:active"
)

// ErrItemNotFound indicates the referenced line item is not on the draft.
var ErrItemNotFound = common.NotFound("line item not found")

// ErrSupplierNotFound indicates the referenced supplier does not exist.
var ErrSupplierNotFound = common.NotFound("supplier not found")

// ErrLastSupplier is returned when a removal would empty the registry.
var ErrLastSupplier = common.Conflict("cannot remove the last supplier")

// Service encapsulates draft and supplier operations over the store.
type Service struct {
	Docs     store.Docs
	Defaults quote.Defaults
	Registry supplier.Registry
	Prices   *pricelist.Service
}

// LineView is a line item together with its computed figures.
type LineView struct {
	quote.LineItem
	Net       float64 `json:"net"`
	Vat       float64 `json:"vat"`
	Gross     float64 `json:"gross"`
	LineTotal float64 `json:"lineTotal"`
}

// Summary carries the document totals and their display strings.
type Summary struct {
	Total               float64               `json:"total"`
	TotalFormatted      string                `json:"totalFormatted"`
	VatSummary          []quote.VatSummaryRow `json:"vatSummary"`
	CreatedAtFormatted  string                `json:"createdAtFormatted"`
	ValidUntilFormatted string                `json:"validUntilFormatted"`
}

// View is everything the rendering layer needs: the draft, per-line
// figures, totals, and the supplier state.
type View struct {
	Draft          quote.Draft  `json:"draft"`
	Items          []LineView   `json:"items"`
	Summary        Summary      `json:"summary"`
	Suppliers      supplier.Set `json:"suppliers"`
	ActiveSupplier quote.Party  `json:"activeSupplier"`
}

// DraftPatch is a partial update of the draft header. Only non-nil
// fields are applied. Enum fields are validated at the handler.
type DraftPatch struct {
	Number     *string    `json:"number"`
	CreatedAt  *string    `json:"createdAt"`
	ValidUntil *string    `json:"validUntil"`
	Currency   *string    `json:"currency" validate:"omitempty,oneof=EUR CZK"`
	VatMode    *string    `json:"vatMode" validate:"omitempty,oneof=WITHOUT_VAT WITH_VAT"`
	Note       *string    `json:"note"`
	View       *ViewPatch `json:"view"`
}

// ViewPatch is a partial update of the visibility flags.
type ViewPatch struct {
	ShowDeliveryAddress *bool `json:"showDeliveryAddress"`
	ShowIco             *bool `json:"showIco"`
	ShowDic             *bool `json:"showDic"`
	ShowIcdph           *bool `json:"showIcdph"`
	ShowCountry         *bool `json:"showCountry"`
}

// ItemPatch is a partial update of one line item. Numeric fields are
// applied as given; negative quantities and prices stay valid.
type ItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Qty         *float64 `json:"qty"`
	Unit        *string  `json:"unit"`
	UnitPrice   *float64 `json:"unitPrice"`
	DiscountPct *float64 `json:"discountPct"`
	VatRate     *float64 `json:"vatRate"`
}

func (p DraftPatch) apply(d quote.Draft) quote.Draft {
	if p.Number != nil {
		d.Number = *p.Number
	}
	if p.CreatedAt != nil {
		d.CreatedAt = *p.CreatedAt
	}
	if p.ValidUntil != nil {
		d.ValidUntil = *p.ValidUntil
	}
	if p.Currency != nil {
		d.Currency = quote.Currency(*p.Currency)
	}
	if p.VatMode != nil {
		d.VatMode = quote.VatMode(*p.VatMode)
	}
	if p.Note != nil {
		d.Note = *p.Note
	}
	if p.View != nil {
		d.View = p.View.apply(d.View)
	}
	return d
}

func (p ViewPatch) apply(v quote.ViewSettings) quote.ViewSettings {
	if p.ShowDeliveryAddress != nil {
		v.ShowDeliveryAddress = *p.ShowDeliveryAddress
	}
	if p.ShowIco != nil {
		v.ShowIco = *p.ShowIco
	}
	if p.ShowDic != nil {
		v.ShowDic = *p.ShowDic
	}
	if p.ShowIcdph != nil {
		v.ShowIcdph = *p.ShowIcdph
	}
	if p.ShowCountry != nil {
		v.ShowCountry = *p.ShowCountry
	}
	return v
}

func (p ItemPatch) apply(it quote.LineItem) quote.LineItem {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Qty != nil {
		it.Qty = *p.Qty
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.UnitPrice != nil {
		it.UnitPrice = *p.UnitPrice
	}
	if p.DiscountPct != nil {
		pct := *p.DiscountPct
		it.DiscountPct = &pct
	}
	if p.VatRate != nil {
		rate := *p.VatRate
		it.VatRate = &rate
	}
	return it
}

func (s *Service) loadDraft(ctx context.Context) quote.Draft {
	raw, ok := s.Docs.LoadRaw(ctx, DraftKey)
	d := quote.NormalizeDraft(raw, s.Defaults.NewDraft())
	if ok && normalizeRepairedDraft(raw, d) {
		countRepair("draft")
	}
	return d
}

func normalizeRepairedDraft(raw []byte, normalized quote.Draft) bool {
	var prev quote.Draft
	if err := json.Unmarshal(raw, &prev); err != nil {
		return true
	}
	return !reflect.DeepEqual(prev, normalized)
}

func (s *Service) saveDraft(ctx context.Context, d quote.Draft) {
	s.Docs.Save(ctx, DraftKey, d)
	if obs.DraftSavesTotal != nil {
		obs.DraftSavesTotal.WithLabelValues("ok").Inc()
	}
}

func (s *Service) loadSuppliers(ctx context.Context) supplier.Set {
	rawSuppliers, okS := s.Docs.LoadRaw(ctx, SuppliersKey)
	rawActive, _ := s.Docs.LoadRaw(ctx, ActiveKey)
	set := s.Registry.NormalizeSet(rawSuppliers, rawActive)
	if okS {
		var prev []quote.Party
		if err := json.Unmarshal(rawSuppliers, &prev); err != nil || !reflect.DeepEqual(prev, set.Suppliers) {
			countRepair("suppliers")
		}
	}
	return set
}

func (s *Service) saveSuppliers(ctx context.Context, set supplier.Set) {
	s.Docs.Save(ctx, SuppliersKey, set.Suppliers)
	s.Docs.Save(ctx, ActiveKey, set.ActiveID)
}

func countRepair(document string) {
	if obs.NormalizeRepairsTotal != nil {
		obs.NormalizeRepairsTotal.WithLabelValues(document).Inc()
	}
}

func (s *Service) view(d quote.Draft, set supplier.Set) View {
	items := make([]LineView, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, LineView{
			LineItem:  it,
			Net:       quote.LineNet(it),
			Vat:       quote.LineVat(it),
			Gross:     quote.LineGross(it),
			LineTotal: quote.LineTotal(it, d.VatMode),
		})
	}
	active, _ := set.Active()
	return View{
		Draft:          d,
		Items:          items,
		Summary:        summarize(d),
		Suppliers:      set,
		ActiveSupplier: active,
	}
}

func summarize(d quote.Draft) Summary {
	total := quote.QuoteTotal(d.Items, d.VatMode)
	rows := []quote.VatSummaryRow{}
	if d.VatMode == quote.WithVat {
		rows = quote.VatSummary(d.Items)
	}
	return Summary{
		Total:               total,
		TotalFormatted:      money.Format(total, string(d.Currency)),
		VatSummary:          rows,
		CreatedAtFormatted:  quote.FormatDate(d.CreatedAt),
		ValidUntilFormatted: quote.FormatDate(d.ValidUntil),
	}
}

// Get loads and repairs the current state without mutating it.
func (s *Service) Get(ctx context.Context) View {
	return s.view(s.loadDraft(ctx), s.loadSuppliers(ctx))
}

// Summary returns only the computed totals for the current draft.
func (s *Service) Summary(ctx context.Context) Summary {
	return summarize(s.loadDraft(ctx))
}

// UpdateDraft applies a partial header update and persists the result.
func (s *Service) UpdateDraft(ctx context.Context, patch DraftPatch) View {
	d := patch.apply(s.loadDraft(ctx))
	s.saveDraft(ctx, d)
	return s.view(d, s.loadSuppliers(ctx))
}

// UpdateCustomer applies a partial update to the customer party.
func (s *Service) UpdateCustomer(ctx context.Context, patch quote.PartyPatch) View {
	d := s.loadDraft(ctx)
	d.Customer = patch.Apply(d.Customer)
	s.saveDraft(ctx, d)
	return s.view(d, s.loadSuppliers(ctx))
}

// AddItem appends a fresh blank line item to the draft.
func (s *Service) AddItem(ctx context.Context) View {
	d := s.loadDraft(ctx)
	d.Items = append(d.Items, s.Defaults.NewItem())
	s.saveDraft(ctx, d)
	return s.view(d, s.loadSuppliers(ctx))
}

// UpdateItem applies a partial update to the line item with the given id.
func (s *Service) UpdateItem(ctx context.Context, id string, patch ItemPatch) (View, error) {
	d := s.loadDraft(ctx)
	found := false
	for i, it := range d.Items {
		if it.ID == id {
			updated := patch.apply(it)
			updated.ID = it.ID
			d.Items[i] = updated
			found = true
			break
		}
	}
	if !found {
		return View{}, ErrItemNotFound
	}
	s.saveDraft(ctx, d)
	return s.view(d, s.loadSuppliers(ctx)), nil
}

// RemoveItem deletes the line item with the given id. Unknown ids are a
// no-op, and the removal may leave zero items within the session; the
// next load re-normalizes to the single blank item.
func (s *Service) RemoveItem(ctx context.Context, id string) View {
	d := s.loadDraft(ctx)
	kept := make([]quote.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	d.Items = kept
	s.saveDraft(ctx, d)
	set := s.loadSuppliers(ctx)
	return s.view(d, set)
}

// AddFromPriceList appends one line item per referenced catalog entry,
// in the order given. Unknown ids are skipped.
func (s *Service) AddFromPriceList(ctx context.Context, ids []string) View {
	d := s.loadDraft(ctx)
	for _, id := range ids {
		entry, ok := s.Prices.Find(ctx, id)
		if !ok {
			continue
		}
		rate := entry.VatRate
		d.Items = append(d.Items, quote.LineItem{
			ID:          s.Defaults.NextID(),
			Name:        entry.Name,
			Description: entry.Description,
			Qty:         1,
			Unit:        entry.Unit,
			UnitPrice:   entry.UnitPrice,
			VatRate:     &rate,
		})
	}
	s.saveDraft(ctx, d)
	return s.view(d, s.loadSuppliers(ctx))
}

// Reset removes the persisted draft and price list and returns the
// default state. Suppliers are a registry of company profiles and
// deliberately survive a reset.
func (s *Service) Reset(ctx context.Context) View {
	s.Docs.Remove(ctx, DraftKey)
	if s.Prices != nil {
		s.Prices.Reset(ctx)
	}
	return s.view(s.Defaults.NewDraft(), s.loadSuppliers(ctx))
}

// Suppliers returns the repaired supplier set.
func (s *Service) Suppliers(ctx context.Context) supplier.Set {
	return s.loadSuppliers(ctx)
}

// AddSupplier appends a blank supplier and makes it active.
func (s *Service) AddSupplier(ctx context.Context) supplier.Set {
	set := s.Registry.Add(s.loadSuppliers(ctx))
	s.saveSuppliers(ctx, set)
	return set
}

// RemoveSupplier deletes the supplier with the given id. Removing the
// last member or an unknown id is rejected.
func (s *Service) RemoveSupplier(ctx context.Context, id string) (supplier.Set, error) {
	set := s.loadSuppliers(ctx)
	if _, ok := findSupplier(set, id); !ok {
		return set, ErrSupplierNotFound
	}
	if len(set.Suppliers) <= 1 {
		return set, ErrLastSupplier
	}
	set, _ = s.Registry.Remove(set, id)
	s.saveSuppliers(ctx, set)
	return set, nil
}

// ActivateSupplier points the active reference at the given supplier.
func (s *Service) ActivateSupplier(ctx context.Context, id string) (supplier.Set, error) {
	set, ok := s.Registry.Activate(s.loadSuppliers(ctx), id)
	if !ok {
		return set, ErrSupplierNotFound
	}
	s.saveSuppliers(ctx, set)
	return set, nil
}

// UpdateActiveSupplier applies a partial update to the active supplier.
func (s *Service) UpdateActiveSupplier(ctx context.Context, patch quote.PartyPatch) supplier.Set {
	set := s.Registry.UpdateActive(s.loadSuppliers(ctx), patch)
	s.saveSuppliers(ctx, set)
	return set
}

// ActiveSupplier resolves the active supplier profile.
func (s *Service) ActiveSupplier(ctx context.Context) quote.Party {
	active, _ := s.loadSuppliers(ctx).Active()
	return active
}

func findSupplier(set supplier.Set, id string) (quote.Party, bool) {
	for _, p := range set.Suppliers {
		if p.ID == id {
			return p, true
		}
	}
	return quote.Party{}, false
}
