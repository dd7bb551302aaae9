package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	App      AppConfig
	Cache    CacheConfig
	Backend  BackendConfig
	Snapshot SnapshotConfig
	Refresh  RefreshConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"boutique-datastore"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
}

// CacheConfig holds cache freshness settings.
type CacheConfig struct {
	// MaxAge is the per-collection freshness window.
	MaxAge time.Duration `envconfig:"CACHE_MAX_AGE" default:"5m"`

	// MemoTTL bounds the backend's internal read memo.
	MemoTTL time.Duration `envconfig:"CACHE_MEMO_TTL" default:"30s"`
}

// BackendConfig selects and configures the backend data service.
type BackendConfig struct {
	Type string `envconfig:"BACKEND_TYPE" default:"sqlite"` // sqlite, mysql, or rest

	// SQLite settings
	SQLitePath string `envconfig:"BACKEND_SQLITE_PATH" default:"./data/storefront.db"`

	// MySQL settings
	MySQLHost     string `envconfig:"BACKEND_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"BACKEND_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"BACKEND_MYSQL_NAME" default:"boutique"`
	MySQLUser     string `envconfig:"BACKEND_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"BACKEND_MYSQL_PASS" default:""`

	// REST settings for the hosted platform
	RESTBaseURL string        `envconfig:"BACKEND_REST_URL" default:""`
	RESTAPIKey  string        `envconfig:"BACKEND_REST_API_KEY" default:""`
	RESTTimeout time.Duration `envconfig:"BACKEND_REST_TIMEOUT" default:"15s"`
}

// SnapshotConfig selects and configures snapshot persistence.
type SnapshotConfig struct {
	Type string `envconfig:"SNAPSHOT_TYPE" default:"file"` // file or redis

	Path string `envconfig:"SNAPSHOT_PATH" default:"./data/snapshot.json"`

	RedisHost     string `envconfig:"SNAPSHOT_REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"SNAPSHOT_REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"SNAPSHOT_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"SNAPSHOT_REDIS_DB" default:"0"`
	RedisKey      string `envconfig:"SNAPSHOT_REDIS_KEY" default:"boutique:datastore:snapshot"`
}

// RefreshConfig holds background refresher settings.
type RefreshConfig struct {
	Enabled  bool          `envconfig:"REFRESH_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"REFRESH_INTERVAL" default:"5m"`
	Timeout  time.Duration `envconfig:"REFRESH_TIMEOUT" default:"1m"`
}

// MySQLDSN returns the MySQL data source name.
func (b *BackendConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		b.MySQLUser, b.MySQLPassword, b.MySQLHost, b.MySQLPort, b.MySQLName)
}

// RedisAddress returns the Redis address in host:port format.
func (s *SnapshotConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
