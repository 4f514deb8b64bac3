// Package config handles the ledgercast.yaml conversion settings.
package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgercast-dev/ledgercast/internal/accounts"
	"github.com/ledgercast-dev/ledgercast/internal/importer"
	"github.com/ledgercast-dev/ledgercast/internal/payment"
)

const dateFormat = "2006-01-02"

var one = decimal.NewFromInt(1)

// Config is the top-level ledgercast.yaml configuration. It is fixed at
// conversion-run start and never mutated mid-run.
type Config struct {
	Currency string           `yaml:"currency"`
	VATRate  string           `yaml:"vat_rate"`
	OpenDate string           `yaml:"open_date"`
	Accounts AccountsConfig   `yaml:"accounts"`
	Keywords KeywordsConfig   `yaml:"keywords"`
	Columns  importer.Columns `yaml:"columns"`
}

// AccountsConfig sets the account roots customer keys hang under.
type AccountsConfig struct {
	Cash      string `yaml:"cash"`
	Bank      string `yaml:"bank"`
	Sales     string `yaml:"sales"`
	VATOutput string `yaml:"vat_output"`
}

// KeywordsConfig holds the payment-classification keyword sets.
type KeywordsConfig struct {
	Cash []string `yaml:"cash"`
	Bank []string `yaml:"bank"`
}

// Default returns the configuration for Georgian sales exports: GEL,
// 18% inclusive VAT, the standard chart roots and keyword sets.
func Default() *Config {
	roots := accounts.DefaultRoots()
	return &Config{
		Currency: "GEL",
		VATRate:  "0.18",
		OpenDate: "2021-01-01",
		Accounts: AccountsConfig{
			Cash:      roots.Cash,
			Bank:      roots.Bank,
			Sales:     roots.Sales,
			VATOutput: roots.VATOutput,
		},
		Keywords: KeywordsConfig{
			Cash: payment.DefaultCashKeywords(),
			Bank: payment.DefaultBankKeywords(),
		},
		Columns: importer.DefaultColumns(),
	}
}

// Load reads a ledgercast.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the fields that later stages rely on.
func (c *Config) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("config: currency is required")
	}
	rate, err := c.Rate()
	if err != nil {
		return err
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return fmt.Errorf("config: vat_rate %s outside [0, 1)", rate)
	}
	if _, err := c.OpeningDate(); err != nil {
		return err
	}
	return nil
}

// Rate parses the inclusive VAT rate.
func (c *Config) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.VATRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: vat_rate %q: %w", c.VATRate, err)
	}
	return rate, nil
}

// OpeningDate parses the date used for account open declarations.
func (c *Config) OpeningDate() (time.Time, error) {
	t, err := time.Parse(dateFormat, c.OpenDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: open_date %q: %w", c.OpenDate, err)
	}
	return t, nil
}

// Roots converts the account section into registry roots.
func (c *Config) Roots() accounts.Roots {
	return accounts.Roots{
		Cash:      c.Accounts.Cash,
		Bank:      c.Accounts.Bank,
		Sales:     c.Accounts.Sales,
		VATOutput: c.Accounts.VATOutput,
	}
}

// Env carries process-environment overrides, kept apart from the YAML
// file so a run can be tuned without editing it.
type Env struct {
	LogLevel   string `env:"LEDGERCAST_LOG_LEVEL" envDefault:"info"`
	ConfigPath string `env:"LEDGERCAST_CONFIG"`
}

// LoadEnv parses the environment overrides.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return e, nil
}
