package config

import (
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string

	QuoteNumber       string
	QuoteValidityDays int
	DefaultCurrency   string
	DefaultVatRate    float64
	DefaultUnit       string
	DefaultCountry    string

	SupplierName    string
	SupplierStreet  string
	SupplierCity    string
	SupplierZip     string
	SupplierCountry string
	SupplierIco     string
	SupplierDic     string
	SupplierIcdph   string
	SupplierPhone   string

	LogoMaxDimension int
	LogoMaxBytes     int64
}

// Load reads configuration from environment variables and optional .env
// files. REDIS_URL is deliberately optional: without it the service runs
// on the in-memory store and nothing survives a restart.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		QuoteNumber:       valueOrDefault(k.String("QUOTE_DEFAULT_NUMBER"), "2026-0001"),
		QuoteValidityDays: parseInt(k.String("QUOTE_VALIDITY_DAYS"), 14),
		DefaultCurrency:   valueOrDefault(k.String("QUOTE_DEFAULT_CURRENCY"), "EUR"),
		DefaultVatRate:    parseFloat(k.String("QUOTE_DEFAULT_VAT_RATE"), 20),
		DefaultUnit:       valueOrDefault(k.String("QUOTE_DEFAULT_UNIT"), "ks"),
		DefaultCountry:    valueOrDefault(k.String("QUOTE_DEFAULT_COUNTRY"), "Slovensko"),

		SupplierName:    k.String("SUPPLIER_NAME"),
		SupplierStreet:  k.String("SUPPLIER_STREET"),
		SupplierCity:    k.String("SUPPLIER_CITY"),
		SupplierZip:     k.String("SUPPLIER_ZIP"),
		SupplierCountry: valueOrDefault(k.String("SUPPLIER_COUNTRY"), "Slovensko"),
		SupplierIco:     k.String("SUPPLIER_ICO"),
		SupplierDic:     k.String("SUPPLIER_DIC"),
		SupplierIcdph:   k.String("SUPPLIER_ICDPH"),
		SupplierPhone:   k.String("SUPPLIER_PHONE"),

		LogoMaxDimension: parseInt(k.String("LOGO_MAX_DIMENSION"), 512),
		LogoMaxBytes:     int64(parseInt(k.String("LOGO_MAX_BYTES"), 2<<20)),
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
