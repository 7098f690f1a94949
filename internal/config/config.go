package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/nikolayk812/pdv-demo/internal/catalog"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	CatalogMemory   = "memory"
	CatalogPostgres = "postgres"
)

type Config struct {
	App AppConfig
	POS POSConfig
	DB  DBConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"PDV_APP_ENV" default:"dev"`
	Port            string        `envconfig:"PDV_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"PDV_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"PDV_LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"PDV_SHUTDOWN_TIMEOUT" default:"10s"`
}

type POSConfig struct {
	StoreName      string   `envconfig:"PDV_STORE_NAME" default:"SUA LOJA"`
	Currency       string   `envconfig:"PDV_CURRENCY" default:"BRL"`
	Locale         string   `envconfig:"PDV_LOCALE" default:"pt-BR"`
	PaymentMethods []string `envconfig:"PDV_PAYMENT_METHODS" default:"cash,card,pix"`
	CatalogBackend string   `envconfig:"PDV_CATALOG_BACKEND" default:"memory"`
	SeedCatalog    bool     `envconfig:"PDV_SEED_CATALOG" default:"true"`
	MaxRegisters   int      `envconfig:"PDV_MAX_REGISTERS" default:"32"`
}

// CurrencyUnit returns the parsed ISO currency. Valid after Load.
func (p POSConfig) CurrencyUnit() currency.Unit {
	return currency.MustParseISO(p.Currency)
}

// Language returns the parsed locale tag. Valid after Load.
func (p POSConfig) Language() language.Tag {
	return language.MustParse(p.Locale)
}

func (p POSConfig) Methods() []domain.PaymentMethod {
	methods := make([]domain.PaymentMethod, 0, len(p.PaymentMethods))
	for _, m := range p.PaymentMethods {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			methods = append(methods, domain.PaymentMethod(m))
		}
	}
	return methods
}

type DBConfig struct {
	DSN         string        `envconfig:"PDV_DB_DSN"`
	MaxConns    int32         `envconfig:"PDV_DB_MAX_CONNS" default:"10"`
	AutoMigrate bool          `envconfig:"PDV_DB_AUTO_MIGRATE" default:"true"`
	PingTimeout time.Duration `envconfig:"PDV_DB_PING_TIMEOUT" default:"5s"`
}

func (c *Config) validate() error {
	cur, err := currency.ParseISO(c.POS.Currency)
	if err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", c.POS.Currency, err)
	}

	// the demo inventory is priced in a single currency
	if fixed := catalog.FixtureCurrency(); c.POS.SeedCatalog && cur != fixed {
		return fmt.Errorf("PDV_SEED_CATALOG requires PDV_CURRENCY=%s, got %s", fixed, cur)
	}

	if _, err := language.Parse(c.POS.Locale); err != nil {
		return fmt.Errorf("locale[%s] is not valid: %w", c.POS.Locale, err)
	}

	if len(c.POS.Methods()) == 0 {
		return fmt.Errorf("payment methods are empty")
	}

	if c.POS.MaxRegisters <= 0 {
		return fmt.Errorf("max registers[%d] must be positive", c.POS.MaxRegisters)
	}

	switch c.POS.CatalogBackend {
	case CatalogMemory:
	case CatalogPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("PDV_DB_DSN is required for the postgres catalog")
		}
	default:
		return fmt.Errorf("catalog backend[%s] is not supported", c.POS.CatalogBackend)
	}

	return nil
}
