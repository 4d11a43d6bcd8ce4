// Package config provides application configuration loaded from environment
// variables with defaults and validation. It covers server timeouts, logging,
// the store backend, the moderation client, rate limiting, web protection and
// observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// Store backends.
const (
	BackendDatabase = "database"
	BackendMemory   = "memory"
)

// StoreConfig selects and tunes the persistence backend.
type StoreConfig struct {
	Backend      string        // STORE_BACKEND: database|memory
	Driver       string        // DB_DRIVER: sqlite|postgres
	DSN          string        // DB_DSN: file path (sqlite) or connection string (postgres)
	MaxOpenConns int           // DB_MAX_OPEN_CONNS
	QueryTimeout time.Duration // DB_QUERY_TIMEOUT, per store call
	SeedPath     string        // SEED_PATH, optional JSON/JSONC file loaded at startup
}

// ModerationConfig configures the profanity-filter client.
type ModerationConfig struct {
	Enabled         bool          // MODERATION_ENABLED
	URL             string        // MODERATION_URL
	APIKey          string        // MODERATION_API_KEY, sent as the "apikey" header
	CensorCharacter string        // MODERATION_CENSOR_CHARACTER
	Timeout         time.Duration // MODERATION_TIMEOUT
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-qa-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test
	RequestTimeout    time.Duration // per-request context deadline; 0 disables

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	LogRedact      bool   // scrub credentials/emails from access logs
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	Store      StoreConfig
	Moderation ModerationConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	return load(true)
}

// LoadStoreOnly is Load without the moderation checks, for commands such as
// seed that never call the moderation API.
func LoadStoreOnly() (Config, error) {
	return load(false)
}

func load(checkModeration bool) (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		RequestTimeout:    getdur("REQUEST_TIMEOUT", 15*time.Second),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		LogRedact:      getbool("LOG_REDACT", true),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/")),

		Store: StoreConfig{
			Backend:      strings.ToLower(getenv("STORE_BACKEND", BackendDatabase)),
			Driver:       strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			DSN:          getenv("DB_DSN", "qa.db"),
			MaxOpenConns: getint("DB_MAX_OPEN_CONNS", 5),
			QueryTimeout: getdur("DB_QUERY_TIMEOUT", 5*time.Second),
			SeedPath:     getenv("SEED_PATH", ""),
		},
		Moderation: ModerationConfig{
			Enabled:         getbool("MODERATION_ENABLED", true),
			URL:             getenv("MODERATION_URL", "https://api.apilayer.com/bad_words"),
			APIKey:          getenv("MODERATION_API_KEY", ""),
			CensorCharacter: getenv("MODERATION_CENSOR_CHARACTER", "*"),
			Timeout:         getdur("MODERATION_TIMEOUT", 5*time.Second),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-qa-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.RequestTimeout < 0 {
		return cfg, errors.New("REQUEST_TIMEOUT must be >= 0")
	}
	switch cfg.Store.Backend {
	case BackendDatabase:
		switch cfg.Store.Driver {
		case "sqlite", "postgres":
		default:
			return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
		}
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return cfg, errors.New("DB_DSN must not be empty")
		}
		if cfg.Store.QueryTimeout <= 0 {
			return cfg, errors.New("DB_QUERY_TIMEOUT must be > 0")
		}
	case BackendMemory:
	default:
		return cfg, errors.New("STORE_BACKEND must be one of: database, memory")
	}
	if checkModeration && cfg.Moderation.Enabled {
		if strings.TrimSpace(cfg.Moderation.APIKey) == "" {
			return cfg, errors.New("MODERATION_API_KEY is required when MODERATION_ENABLED is true")
		}
		if strings.TrimSpace(cfg.Moderation.URL) == "" {
			return cfg, errors.New("MODERATION_URL must not be empty")
		}
		if cfg.Moderation.Timeout <= 0 {
			return cfg, errors.New("MODERATION_TIMEOUT must be > 0")
		}
		if utf8.RuneCountInString(cfg.Moderation.CensorCharacter) != 1 {
			return cfg, errors.New("MODERATION_CENSOR_CHARACTER must be a single character")
		}
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
