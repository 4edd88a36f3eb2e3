package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds session-token and shared-key authentication settings.
// API keys have no hardcoded fallback: an empty key disables that
// authenticator rather than silently accepting a default value.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"linkmark"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
	BotAPIKey      string        `yaml:"bot_api_key"      env:"AUTH_BOT_API_KEY"`
	WhatsAppAPIKey string        `yaml:"whatsapp_api_key" env:"AUTH_WHATSAPP_API_KEY"`
}

// APIKeys returns the configured shared keys (empty keys excluded).
func (c AuthConfig) APIKeys() []string {
	var keys []string
	if c.BotAPIKey != "" {
		keys = append(keys, c.BotAPIKey)
	}
	if c.WhatsAppAPIKey != "" {
		keys = append(keys, c.WhatsAppAPIKey)
	}
	return keys
}

// BookmarksConfig holds bookmark service limits and defaults.
type BookmarksConfig struct {
	MaxTitleLen     int    `yaml:"max_title_len"     env:"BOOKMARKS_MAX_TITLE_LEN"     env-default:"500"`
	ImportChunkSize int    `yaml:"import_chunk_size" env:"BOOKMARKS_IMPORT_CHUNK_SIZE" env-default:"50"`
	ImportMaxItems  int    `yaml:"import_max_items"  env:"BOOKMARKS_IMPORT_MAX_ITEMS"  env-default:"1000"`
	DefaultUserID   string `yaml:"default_user_id"   env:"BOOKMARKS_DEFAULT_USER_ID"`
	TodoURL         string `yaml:"todo_url"          env:"BOOKMARKS_TODO_URL"          env-default:"https://linkmark.app/todo"`

	// DiscardedRetentionDays bounds how long DISCARDED bookmarks are kept
	// before the cleanup command removes them.
	DiscardedRetentionDays int `yaml:"discarded_retention_days" env:"BOOKMARKS_DISCARDED_RETENTION_DAYS" env-default:"30"`
}

// FetchConfig bounds the outbound metadata fetch.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"    env:"FETCH_TIMEOUT"    env-default:"10s"`
	UserAgent string        `yaml:"user_agent" env:"FETCH_USER_AGENT" env-default:"LinkmarkBot/1.0 (+https://linkmark.app)"`
}

// TelegramConfig holds Telegram bot settings. An empty BotToken disables
// outbound replies; an empty WebhookSecret disables inbound verification.
type TelegramConfig struct {
	BotToken      string `yaml:"bot_token"      env:"TELEGRAM_BOT_TOKEN"`
	WebhookSecret string `yaml:"webhook_secret" env:"TELEGRAM_WEBHOOK_SECRET"`
}

// WhatsAppConfig holds WhatsApp webhook settings.
type WhatsAppConfig struct {
	VerifyToken string `yaml:"verify_token" env:"WHATSAPP_VERIFY_TOKEN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
