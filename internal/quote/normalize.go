package quote

import "encoding/json"

// NormalizeDraft repairs a persisted draft so that every known field is
// present, falling back to def field by field. The input may come from
// an older schema or be outright garbage: any malformed value is
// treated as absent. It never fails, and normalizing the JSON encoding
// of its own output is a no-op.
//
// Items are the one exception to per-field merging: a missing, non-array,
// or empty collection is replaced wholesale with the default items, and
// anything else is kept verbatim with no per-item backfill.
func NormalizeDraft(raw []byte, def Draft) Draft {
	fields := decodeObject(raw)
	return Draft{
		Number:     stringField(fields, "number", def.Number),
		CreatedAt:  stringField(fields, "createdAt", def.CreatedAt),
		ValidUntil: stringField(fields, "validUntil", def.ValidUntil),
		Currency:   Currency(stringField(fields, "currency", string(def.Currency))),
		VatMode:    VatMode(stringField(fields, "vatMode", string(def.VatMode))),
		Customer:   NormalizeParty(fields["customer"], def.Customer),
		Items:      normalizeItems(fields["items"], def.Items),
		Note:       stringField(fields, "note", def.Note),
		View:       NormalizeView(fields["view"], def.View),
	}
}

// NormalizeParty merges a possibly partial party object over def,
// field by field.
func NormalizeParty(raw json.RawMessage, def Party) Party {
	fields := decodeObject(raw)
	return Party{
		ID:          stringField(fields, "id", def.ID),
		Name:        stringField(fields, "name", def.Name),
		Street:      stringField(fields, "street", def.Street),
		City:        stringField(fields, "city", def.City),
		Zip:         stringField(fields, "zip", def.Zip),
		Country:     stringField(fields, "country", def.Country),
		Ico:         stringField(fields, "ico", def.Ico),
		Dic:         stringField(fields, "dic", def.Dic),
		Icdph:       stringField(fields, "icdph", def.Icdph),
		PhoneMobile: stringField(fields, "phoneMobile", def.PhoneMobile),
		LogoRef:     stringField(fields, "logoRef", def.LogoRef),

		DeliveryStreet:  stringField(fields, "deliveryStreet", def.DeliveryStreet),
		DeliveryCity:    stringField(fields, "deliveryCity", def.DeliveryCity),
		DeliveryZip:     stringField(fields, "deliveryZip", def.DeliveryZip),
		DeliveryCountry: stringField(fields, "deliveryCountry", def.DeliveryCountry),
	}
}

// NormalizeView merges a possibly partial view-settings object over def.
func NormalizeView(raw json.RawMessage, def ViewSettings) ViewSettings {
	fields := decodeObject(raw)
	return ViewSettings{
		ShowDeliveryAddress: boolField(fields, "showDeliveryAddress", def.ShowDeliveryAddress),
		ShowIco:             boolField(fields, "showIco", def.ShowIco),
		ShowDic:             boolField(fields, "showDic", def.ShowDic),
		ShowIcdph:           boolField(fields, "showIcdph", def.ShowIcdph),
		ShowCountry:         boolField(fields, "showCountry", def.ShowCountry),
	}
}

func normalizeItems(raw json.RawMessage, def []LineItem) []LineItem {
	if len(raw) > 0 {
		var items []LineItem
		if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 {
			return items
		}
	}
	return append([]LineItem(nil), def...)
}

func decodeObject(raw []byte) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func stringField(fields map[string]json.RawMessage, key, def string) string {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return def
	}
	return s
}

func boolField(fields map[string]json.RawMessage, key string, def bool) bool {
	raw, ok := fields[key]
	if !ok {
		return def
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return def
	}
	return b
}
