package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Stripe   StripeConfig
	Printify PrintifyConfig
	Sync     SyncConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TEES_APP_ENV" required:"true"`
	Port         string `envconfig:"TEES_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"TEES_APP_BASE_URL" required:"true"`
	LogLevel     string `envconfig:"TEES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TEES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TEES_DB_DSN"`
	Driver string `envconfig:"TEES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TEES_DB_HOST"`
	LegacyPort     int    `envconfig:"TEES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TEES_DB_USER"`
	LegacyPassword string `envconfig:"TEES_DB_PASSWORD"`
	LegacyName     string `envconfig:"TEES_DB_NAME"`
	LegacySSLMode  string `envconfig:"TEES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TEES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TEES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TEES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TEES_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	UseSQLite  bool   `envconfig:"TEES_DB_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"TEES_DB_SQLITE_PATH" default:"tees.db"`

	AutoMigrate bool `envconfig:"TEES_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TEES_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TEES_REDIS_ADDR"`
	Password     string        `envconfig:"TEES_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey               string        `envconfig:"TEES_STRIPE_API_KEY" required:"true"`
	WebhookSecret        string        `envconfig:"TEES_STRIPE_WEBHOOK_SECRET" required:"true"`
	Env                  string        `envconfig:"TEES_STRIPE_ENV" default:"test"`
	EventIdempotencyTTL  time.Duration `envconfig:"TEES_STRIPE_EVENT_IDEMPOTENCY_TTL" default:"720h"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type PrintifyConfig struct {
	APIToken       string        `envconfig:"TEES_PRINTIFY_API_TOKEN" required:"true"`
	ShopID         string        `envconfig:"TEES_PRINTIFY_SHOP_ID" required:"true"`
	BaseURL        string        `envconfig:"TEES_PRINTIFY_BASE_URL" default:"https://api.printify.com/v1"`
	RequestTimeout time.Duration `envconfig:"TEES_PRINTIFY_REQUEST_TIMEOUT" default:"30s"`
	ShippingMethod int           `envconfig:"TEES_PRINTIFY_SHIPPING_METHOD" default:"1"`
}

type SyncConfig struct {
	Token    string        `envconfig:"TEES_SYNC_TOKEN" required:"true"`
	Interval time.Duration `envconfig:"TEES_SYNC_INTERVAL" default:"6h"`
	LockTTL  time.Duration `envconfig:"TEES_SYNC_LOCK_TTL" default:"1h"`
}

type CheckoutConfig struct {
	Currency         string   `envconfig:"TEES_CHECKOUT_CURRENCY" default:"usd"`
	AllowedCountries []string `envconfig:"TEES_CHECKOUT_ALLOWED_COUNTRIES" default:"US,CA,GB,AU,NZ,JM,BB,TT,BS,DO"`
}

func (db *DBConfig) ensureDSN() error {
	if db.UseSQLite {
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
