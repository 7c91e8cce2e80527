package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := MustLoad()
	if cfg.QuoteNumber != "2026-0001" {
		t.Fatalf("QuoteNumber = %q", cfg.QuoteNumber)
	}
	if cfg.QuoteValidityDays != 14 {
		t.Fatalf("QuoteValidityDays = %d", cfg.QuoteValidityDays)
	}
	if cfg.DefaultCurrency != "EUR" || cfg.DefaultVatRate != 20 {
		t.Fatalf("currency/vat defaults: %q %v", cfg.DefaultCurrency, cfg.DefaultVatRate)
	}
	if cfg.DefaultUnit != "ks" || cfg.DefaultCountry != "Slovensko" {
		t.Fatalf("unit/country defaults: %q %q", cfg.DefaultUnit, cfg.DefaultCountry)
	}
	if cfg.LogoMaxDimension != 512 || cfg.LogoMaxBytes != 2<<20 {
		t.Fatalf("logo defaults: %d %d", cfg.LogoMaxDimension, cfg.LogoMaxBytes)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTE_VALIDITY_DAYS", "30")
	t.Setenv("QUOTE_DEFAULT_VAT_RATE", "23")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := MustLoad()
	if cfg.HTTPAddr() != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr())
	}
	if cfg.QuoteValidityDays != 30 || cfg.DefaultVatRate != 23 {
		t.Fatalf("overrides lost: %d %v", cfg.QuoteValidityDays, cfg.DefaultVatRate)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QUOTE_VALIDITY_DAYS", "fortnight")
	t.Setenv("QUOTE_DEFAULT_VAT_RATE", "twenty")

	cfg := MustLoad()
	if cfg.QuoteValidityDays != 14 || cfg.DefaultVatRate != 20 {
		t.Fatalf("malformed values should fall back: %d %v", cfg.QuoteValidityDays, cfg.DefaultVatRate)
	}
}
