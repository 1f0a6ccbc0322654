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
	Server   ServerConfig
	App      AppConfig
	Cache    CacheConfig
	MarketDB MarketDBConfig
	Game     GameConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"footcaster-market-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LoginKey    string `envconfig:"LOGIN_KEY" default:""` // Admin endpoints login key
	// OperatorFID is the designated operator identity allowed to bypass
	// item hold periods.
	OperatorFID int64 `envconfig:"APP_OPERATOR_FID" default:"250704"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"30s"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// MarketDBConfig holds record store settings.
type MarketDBConfig struct {
	Type string `envconfig:"MARKET_DB_TYPE" default:"sqlite"` // sqlite or mysql
	Path string `envconfig:"MARKET_DB_PATH" default:"./data/market.db"`
	// MySQL settings
	Host     string `envconfig:"MARKET_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"MARKET_DB_PORT" default:"3306"`
	Name     string `envconfig:"MARKET_DB_NAME" default:"footcaster"`
	User     string `envconfig:"MARKET_DB_USER" default:"root"`
	Password string `envconfig:"MARKET_DB_PASS" default:""`
}

// GameConfig holds economy rule settings.
type GameConfig struct {
	// HoldPeriod is how long a freshly acquired item cannot be listed or
	// auctioned.
	HoldPeriod time.Duration `envconfig:"GAME_HOLD_PERIOD" default:"168h"`
	// AntiSnipeWindow is the remaining-time threshold that triggers the
	// one-shot auction extension; AntiSnipeExtension is how far the end
	// time moves.
	AntiSnipeWindow    time.Duration `envconfig:"GAME_ANTI_SNIPE_WINDOW" default:"180s"`
	AntiSnipeExtension time.Duration `envconfig:"GAME_ANTI_SNIPE_EXTENSION" default:"180s"`
	// IdempotencySweepInterval is how often expired idempotency records
	// are purged.
	IdempotencySweepInterval time.Duration `envconfig:"GAME_IDEMPOTENCY_SWEEP_INTERVAL" default:"10m"`
}

// MySQLDSN returns the MySQL data source name.
func (m *MarketDBConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		m.User, m.Password, m.Host, m.Port, m.Name)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
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
