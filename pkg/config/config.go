package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Store backend selection: one contract, pluggable backing store.
const (
	StoreBackendMemory = "memory"
	StoreBackendSQLite = "sqlite"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Catalog CatalogConfig
	Gateway GatewayConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"development"`
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

// DBConfig drives the backend server database. Postgres in deployment,
// a SQLite file for local development.
type DBConfig struct {
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STOREFRONT_DB_DSN" default:"storefront.db"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"false"`
	Seed        bool `envconfig:"STOREFRONT_DB_SEED" default:"true"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q (postgres or sqlite)", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("STOREFRONT_DB_DSN is required")
	}
	return nil
}

// CatalogConfig selects the client-side fallback store backend.
type CatalogConfig struct {
	StoreBackend string `envconfig:"STOREFRONT_STORE_BACKEND" default:"memory"`
	SQLitePath   string `envconfig:"STOREFRONT_STORE_SQLITE_PATH" default:"storefront-local.db"`
}

func (c CatalogConfig) validate() error {
	switch c.StoreBackend {
	case StoreBackendMemory, StoreBackendSQLite:
	default:
		return fmt.Errorf("unsupported store backend %q (memory or sqlite)", c.StoreBackend)
	}
	if c.StoreBackend == StoreBackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("STOREFRONT_STORE_SQLITE_PATH is required for the sqlite backend")
	}
	return nil
}

// GatewayConfig drives the remote catalog/order client.
type GatewayConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_GATEWAY_BASE_URL" default:"http://localhost:8080/api"`
	Timeout time.Duration `envconfig:"STOREFRONT_GATEWAY_TIMEOUT" default:"30s"`

	// SimulateOrderSuccess reports order submission as successful when the
	// remote service is unreachable. Demo affordance, off by default.
	SimulateOrderSuccess bool `envconfig:"STOREFRONT_GATEWAY_SIMULATE_ORDER_SUCCESS" default:"false"`
}
