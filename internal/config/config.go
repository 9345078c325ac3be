package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string

	// Flat VAT rate stamped on every product in the feed. The deployment
	// region uses a single rate, so this is a constant per instance.
	TaxRate float64

	// Locale pair used when resolving localized text columns.
	PreferredLocale string
	FallbackLocale  string
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),

		TaxRate: getFloat("TAX_RATE", 0.15),

		PreferredLocale: get("PREFERRED_LOCALE", "ar_001"),
		FallbackLocale:  get("FALLBACK_LOCALE", "en_US"),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
