package quote

// Currency is an enumerated currency code attached to the whole draft.
// Line items never carry their own currency.
type Currency string

// Supported currency codes.
const (
	CurrencyEUR Currency = "EUR"
	CurrencyCZK Currency = "CZK"
)

// VatMode selects which computed figure acts as the line total of a
// document: the tax-exclusive net or the tax-inclusive gross.
type VatMode string

// Document VAT modes.
const (
	WithoutVat VatMode = "WITHOUT_VAT"
	WithVat    VatMode = "WITH_VAT"
)

// LineItem is a single priced row of the quote. UnitPrice is always
// tax-exclusive. Negative quantities and prices are valid credit lines
// and are never rejected.
type LineItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Qty         float64  `json:"qty"`
	Unit        string   `json:"unit"`
	UnitPrice   float64  `json:"unitPrice"`
	DiscountPct *float64 `json:"discountPct,omitempty"`
	VatRate     *float64 `json:"vatRate,omitempty"`
}

// Party describes a supplier or customer. Identity is ID; every other
// field is display data and never influences a computed figure.
// Scalar fields stay in the JSON encoding even when empty so that a
// cleared value survives a persist/normalize round trip.
type Party struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	Ico         string `json:"ico"`
	Dic         string `json:"dic"`
	Icdph       string `json:"icdph"`
	PhoneMobile string `json:"phoneMobile"`
	LogoRef     string `json:"logoRef"`

	DeliveryStreet  string `json:"deliveryStreet"`
	DeliveryCity    string `json:"deliveryCity"`
	DeliveryZip     string `json:"deliveryZip"`
	DeliveryCountry string `json:"deliveryCountry"`
}

// ViewSettings are the purely presentational visibility flags. They must
// never affect totals.
type ViewSettings struct {
	ShowDeliveryAddress bool `json:"showDeliveryAddress"`
	ShowIco             bool `json:"showIco"`
	ShowDic             bool `json:"showDic"`
	ShowIcdph           bool `json:"showIcdph"`
	ShowCountry         bool `json:"showCountry"`
}

// Draft is the in-progress quote document. Item order is display and
// print order. CreatedAt and ValidUntil are ISO calendar dates; their
// ordering relative to each other is intentionally not enforced.
type Draft struct {
	Number     string       `json:"number"`
	CreatedAt  string       `json:"createdAt"`
	ValidUntil string       `json:"validUntil"`
	Currency   Currency     `json:"currency"`
	VatMode    VatMode      `json:"vatMode"`
	Customer   Party        `json:"customer"`
	Items      []LineItem   `json:"items"`
	Note       string       `json:"note"`
	View       ViewSettings `json:"view"`
}

// VatSummaryRow is one line of the VAT breakdown: all items sharing a
// VAT rate, folded into base, VAT, and gross totals.
type VatSummaryRow struct {
	VatRate float64 `json:"vatRate"`
	Base    float64 `json:"base"`
	Vat     float64 `json:"vat"`
	Total   float64 `json:"total"`
}

// PartyPatch carries a partial update of a Party. Only non-nil fields
// are applied.
type PartyPatch struct {
	Name        *string `json:"name"`
	Street      *string `json:"street"`
	City        *string `json:"city"`
	Zip         *string `json:"zip"`
	Country     *string `json:"country"`
	Ico         *string `json:"ico"`
	Dic         *string `json:"dic"`
	Icdph       *string `json:"icdph"`
	PhoneMobile *string `json:"phoneMobile"`
	LogoRef     *string `json:"logoRef"`

	DeliveryStreet  *string `json:"deliveryStreet"`
	DeliveryCity    *string `json:"deliveryCity"`
	DeliveryZip     *string `json:"deliveryZip"`
	DeliveryCountry *string `json:"deliveryCountry"`
}

// Apply returns a copy of p with the patch fields written over it.
// Identity is never patched.
func (patch PartyPatch) Apply(p Party) Party {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Street != nil {
		p.Street = *patch.Street
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Zip != nil {
		p.Zip = *patch.Zip
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.Ico != nil {
		p.Ico = *patch.Ico
	}
	if patch.Dic != nil {
		p.Dic = *patch.Dic
	}
	if patch.Icdph != nil {
		p.Icdph = *patch.Icdph
	}
	if patch.PhoneMobile != nil {
		p.PhoneMobile = *patch.PhoneMobile
	}
	if patch.LogoRef != nil {
		p.LogoRef = *patch.LogoRef
	}
	if patch.DeliveryStreet != nil {
		p.DeliveryStreet = *patch.DeliveryStreet
	}
	if patch.DeliveryCity != nil {
		p.DeliveryCity = *patch.DeliveryCity
	}
	if patch.DeliveryZip != nil {
		p.DeliveryZip = *patch.DeliveryZip
	}
	if patch.DeliveryCountry != nil {
		p.DeliveryCountry = *patch.DeliveryCountry
	}
	return p
}
