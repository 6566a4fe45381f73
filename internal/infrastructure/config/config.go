package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"

	ProviderStatic = "static"
	ProviderRemote = "remote"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	Shop     ShopConfig
	Drivers  DriverConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Images   ImageConfig
	SeedFile string `env:"SEED_FILE"`

	DispatcherWorkers int `env:"DISPATCHER_WORKERS, default=4"`
}

type ShopConfig struct {
	Locale         string        `env:"LOCALE,                   default=fr-SN"`
	CurrencySuffix string        `env:"CURRENCY_SUFFIX,          default=F"`
	WhatsAppNumber string        `env:"WHATSAPP_NUMBER,          default=221778012731"`
	PageSize       int           `env:"PAGE_SIZE,                default=12"`
	PersistTimeout time.Duration `env:"CHECKOUT_PERSIST_TIMEOUT, default=5s"`
	CartTTL        time.Duration `env:"CART_TTL,                 default=720h"`
}

type DriverConfig struct {
	Catalog  string `env:"CATALOG_DRIVER,    default=memory"`
	Slot     string `env:"SLOT_DRIVER,       default=memory"`
	Identity string `env:"IDENTITY_PROVIDER, default=static"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=mg_luxury"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	DedupTTL time.Duration `env:"EVENT_DEDUP_TTL, default=1h"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=boutique.db"`
}

type ImageConfig struct {
	APIKey   string `env:"IMGBB_API_KEY"`
	Endpoint string `env:"IMGBB_ENDPOINT,  default=https://api.imgbb.com/1/upload"`
	MaxBytes int64  `env:"MAX_IMAGE_BYTES, default=5242880"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return cfg
}

// LoadWith reads configuration through lookuper and validates driver choices.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Drivers.Catalog {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("config: unknown CATALOG_DRIVER %q", c.Drivers.Catalog)
	}
	switch c.Drivers.Slot {
	case DriverRedis, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: unknown SLOT_DRIVER %q", c.Drivers.Slot)
	}
	switch c.Drivers.Identity {
	case ProviderStatic, ProviderRemote:
	default:
		return fmt.Errorf("config: unknown IDENTITY_PROVIDER %q", c.Drivers.Identity)
	}
	if c.Drivers.Identity == ProviderRemote && c.Drivers.Catalog != DriverMongo {
		return fmt.Errorf("config: IDENTITY_PROVIDER=remote requires CATALOG_DRIVER=mongo")
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required in production")
	}
	if c.Shop.PageSize < 1 {
		return fmt.Errorf("config: PAGE_SIZE must be positive")
	}
	return nil
}
