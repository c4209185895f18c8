package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv            = "STOREFRONT_APP_ENV"
	EnvPort              = "STOREFRONT_APP_PORT"
	EnvLogLevel          = "STOREFRONT_LOG_LEVEL"
	EnvBackendBaseURL    = "STOREFRONT_BACKEND_BASE_URL"
	EnvBackendTimeout    = "STOREFRONT_BACKEND_TIMEOUT"
	EnvRedisURL          = "STOREFRONT_REDIS_URL"
	EnvSessionIdleTTL    = "STOREFRONT_SESSION_IDLE_TTL"
	EnvSearchDebounce    = "STOREFRONT_SEARCH_DEBOUNCE"
	EnvCORSOrigins       = "STOREFRONT_CORS_ORIGINS"
	EnvTracingEnabled    = "STOREFRONT_TRACING_ENABLED"
	EnvSearchPageSize    = "STOREFRONT_SEARCH_PAGE_SIZE"
	EnvSessionCookieName = "STOREFRONT_SESSION_COOKIE"
	EnvSessionMaxLive    = "STOREFRONT_SESSION_MAX_WORKSPACES"
)
