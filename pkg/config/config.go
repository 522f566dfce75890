package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	// Url selects the driver by scheme: postgres:// or sqlite://<path>.
	Url             string        `envconfig:"URL" default:"sqlite://amanah.db"`
	Migrate         bool          `envconfig:"MIGRATE" default:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	// URL enables the Redis metal price cache when set.
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"amanah:metal:"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Zakat struct {
	GoldPricePerGram   decimal.Decimal `envconfig:"GOLD_PRICE_PER_GRAM" default:"5000"`
	SilverPricePerGram decimal.Decimal `envconfig:"SILVER_PRICE_PER_GRAM" default:"80"`
	NisabBasis         string          `envconfig:"NISAB_BASIS" default:"gold"`
	// PriceTTL bounds how long a price supplied in a request is reused.
	// Zero keeps it until the next supplied price.
	PriceTTL time.Duration `envconfig:"PRICE_TTL" default:"0"`
}

type Ledger struct {
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"INR"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[amanah]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Zakat     *Zakat     `envconfig:"ZAKAT"`
	Ledger    *Ledger    `envconfig:"LEDGER"`
}

// DefaultCurrency returns the currency new accounts and users fall back to.
func DefaultCurrency(cfg *App) string {
	if cfg == nil || cfg.Ledger == nil || cfg.Ledger.DefaultCurrency == "" {
		return "INR"
	}
	return cfg.Ledger.DefaultCurrency
}
