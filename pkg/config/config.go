package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Redis     RedisConfig
	Session   SessionConfig
	Search    SearchConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the gateway at the commerce REST backend.
type BackendConfig struct {
	BaseURL      string        `envconfig:"STOREFRONT_BACKEND_BASE_URL" required:"true"`
	Timeout      time.Duration `envconfig:"STOREFRONT_BACKEND_TIMEOUT" default:"10s"`
	APIKey       string        `envconfig:"STOREFRONT_BACKEND_API_KEY"`
	APIKeyHeader string        `envconfig:"STOREFRONT_BACKEND_API_KEY_HEADER" default:"X-API-Key"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(strings.TrimSpace(b.BaseURL))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvBackendBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url", EnvBackendBaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host", EnvBackendBaseURL)
	}
	return nil
}

// RedisConfig is optional; an empty URL and address disables the shared identity cache.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
	IdentityTTL  time.Duration `envconfig:"STOREFRONT_REDIS_IDENTITY_TTL" default:"5m"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	CookieName    string        `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_sid"`
	CookieSecure  bool          `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"true"`
	IdleTTL       time.Duration `envconfig:"STOREFRONT_SESSION_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"1m"`
	MaxWorkspaces int           `envconfig:"STOREFRONT_SESSION_MAX_WORKSPACES" default:"10000"`
	LoginPath     string        `envconfig:"STOREFRONT_LOGIN_PATH" default:"/login"`
}

type SearchConfig struct {
	Debounce time.Duration `envconfig:"STOREFRONT_SEARCH_DEBOUNCE" default:"300ms"`
	PageSize int           `envconfig:"STOREFRONT_SEARCH_PAGE_SIZE" default:"12"`
	// SuggestionLimit caps how many name suggestions are kept; zero keeps all.
	SuggestionLimit int `envconfig:"STOREFRONT_SEARCH_SUGGESTION_LIMIT" default:"8"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

// RateLimitConfig bounds order submissions per visitor. Requires redis; without it no limit applies.
type RateLimitConfig struct {
	CheckoutLimit  int64         `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT" default:"5"`
	CheckoutWindow time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
}

type TelemetryConfig struct {
	TracingEnabled bool   `envconfig:"STOREFRONT_TRACING_ENABLED" default:"false"`
	ServiceName    string `envconfig:"STOREFRONT_SERVICE_NAME" default:"storefront"`
}
