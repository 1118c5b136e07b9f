package config

import (
	"testing"
	"time"
)

// setAll clears the variables this package reads so defaults apply, then
// sets the provided overrides.
func setAll(t *testing.T, overrides map[string]string) {
	t.Helper()
	keys := []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "DB_PATH", "SEO_DAILY_LIMIT", "LEARN_DAILY_LIMIT", "CACHE_TTL",
		"GEMINI_API_KEY_SEO", "GEMINI_API_KEY_LEARN", "GEMINI_MODEL",
		"OPENROUTER_API_KEY_SEO", "OPENROUTER_API_KEY_LEARN", "OPENROUTER_MODEL",
		"PROVIDER_TIMEOUT", "RATE_RPS", "RATE_BURST", "CORS_ALLOWED_ORIGINS",
		"ENABLE_HSTS", "HSTS_MAX_AGE", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
	for k, v := range overrides {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setAll(t, nil)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.APIBasePath != "/api" {
		t.Errorf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.SEODailyLimit != 5 || cfg.LearnDailyLimit != 10 {
		t.Errorf("limits = %d/%d", cfg.SEODailyLimit, cfg.LearnDailyLimit)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL default = %v; want 0 (no expiry)", cfg.CacheTTL)
	}
	if cfg.Providers.Timeout != 20*time.Second {
		t.Errorf("provider timeout = %v", cfg.Providers.Timeout)
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath default should select in-memory stores, got %q", cfg.DBPath)
	}
	// Credentials are optional; absence must not fail validation.
	if cfg.Providers.GeminiKeySEO != "" || cfg.Providers.OpenRouterKeyLearn != "" {
		t.Error("credentials should default to empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setAll(t, map[string]string{
		"PORT":                   "9090",
		"API_BASE_PATH":          "api/v2/",
		"SEO_DAILY_LIMIT":        "3",
		"LEARN_DAILY_LIMIT":      "7",
		"CACHE_TTL":              "24h",
		"PROVIDER_TIMEOUT":       "5s",
		"GEMINI_API_KEY_SEO":     "g-seo",
		"OPENROUTER_API_KEY_SEO": "or-seo",
		"CORS_ALLOWED_ORIGINS":   " https://a.example , https://b.example ",
		"LOG_LEVEL":              "WARNING",
	})
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Errorf("APIBasePath = %q; want normalized /api/v2", cfg.APIBasePath)
	}
	if cfg.SEODailyLimit != 3 || cfg.LearnDailyLimit != 7 {
		t.Errorf("limits = %d/%d", cfg.SEODailyLimit, cfg.LearnDailyLimit)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.Providers.GeminiKeySEO != "g-seo" || cfg.Providers.OpenRouterKeySEO != "or-seo" {
		t.Errorf("provider keys not loaded: %+v", cfg.Providers)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("CORS origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LOG_LEVEL normalization: %q", cfg.LogLevel)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"negative seo limit", map[string]string{"SEO_DAILY_LIMIT": "-1"}},
		{"negative learn limit", map[string]string{"LEARN_DAILY_LIMIT": "-2"}},
		{"negative cache ttl", map[string]string{"CACHE_TTL": "-1h"}},
		{"zero provider timeout", map[string]string{"PROVIDER_TIMEOUT": "-1s"}},
		{"zero burst", map[string]string{"RATE_BURST": "0"}},
		{"bad sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setAll(t, tc.env)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		" /api  ": "/api",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	setAll(t, map[string]string{"LOG_LEVEL": "verbose"})
	defer func() {
		if recover() == nil {
			t.Fatal("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}
