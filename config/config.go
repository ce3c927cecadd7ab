package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/rustyeddy/arbitrage/risk"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Trading TradingConfig `json:"trading" yaml:"trading"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// TradingConfig contains the economics and limits of an operating day
type TradingConfig struct {
	CommissionPct    decimal.Decimal `json:"commission_pct" yaml:"commission_pct"`
	TargetProfitPct  decimal.Decimal `json:"target_profit_pct" yaml:"target_profit_pct"`
	MinSalesPerDay   int             `json:"min_sales_per_day" yaml:"min_sales_per_day"`
	MaxSalesPerDay   int             `json:"max_sales_per_day" yaml:"max_sales_per_day"`
	DefaultCycleDays int             `json:"default_cycle_days" yaml:"default_cycle_days"`
	Currency         string          `json:"currency" yaml:"currency"`
}

// StoreConfig locates the sqlite database
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// LogConfig contains logging and audit trail parameters
type LogConfig struct {
	Level      string `json:"level" yaml:"level"` // debug, info, warn, error
	Pretty     bool   `json:"pretty" yaml:"pretty"`
	AuditFile  string `json:"audit_file,omitempty" yaml:"audit_file,omitempty"` // empty disables the audit trail
	MaxSizeMB  int64  `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
}

// Policy returns the sale limits and pricing defaults for the engine.
func (t TradingConfig) Policy() risk.Policy {
	return risk.Policy{
		CommissionPct:   t.CommissionPct,
		TargetProfitPct: t.TargetProfitPct,
		MinSalesPerDay:  t.MinSalesPerDay,
		MaxSalesPerDay:  t.MaxSalesPerDay,
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML). Keys the
// file leaves out keep their default value.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads .env files (missing ones are ignored) and overlays any
// ARB_* variables on c.
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	dec := func(key string, dst *decimal.Decimal) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("ARB_DB_PATH", &c.Store.DBPath)
	str("ARB_CURRENCY", &c.Trading.Currency)
	str("ARB_LOG_LEVEL", &c.Log.Level)
	str("ARB_AUDIT_FILE", &c.Log.AuditFile)

	return errors.Join(
		dec("ARB_COMMISSION_PCT", &c.Trading.CommissionPct),
		dec("ARB_TARGET_PROFIT_PCT", &c.Trading.TargetProfitPct),
		num("ARB_MIN_SALES_PER_DAY", &c.Trading.MinSalesPerDay),
		num("ARB_MAX_SALES_PER_DAY", &c.Trading.MaxSalesPerDay),
		num("ARB_CYCLE_DAYS", &c.Trading.DefaultCycleDays),
	)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	t := c.Trading
	if t.CommissionPct.IsNegative() || t.CommissionPct.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("trading.commission_pct must be between 0 and 100")
	}
	if t.TargetProfitPct.IsNegative() {
		return fmt.Errorf("trading.target_profit_pct must not be negative")
	}
	if t.MaxSalesPerDay <= 0 {
		return fmt.Errorf("trading.max_sales_per_day must be positive")
	}
	if t.MinSalesPerDay < 0 || t.MinSalesPerDay > t.MaxSalesPerDay {
		return fmt.Errorf("trading.min_sales_per_day must be between 0 and max_sales_per_day")
	}
	if t.DefaultCycleDays <= 0 {
		return fmt.Errorf("trading.default_cycle_days must be positive")
	}
	if t.Currency == "" {
		return fmt.Errorf("trading.currency is required")
	}
	if money.GetCurrency(t.Currency) == nil {
		return fmt.Errorf("unknown currency: %s", t.Currency)
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.AuditFile != "" && c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive when audit_file is set")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			CommissionPct:    decimal.RequireFromString("0.35"),
			TargetProfitPct:  decimal.RequireFromString("2.0"),
			MinSalesPerDay:   3,
			MaxSalesPerDay:   5,
			DefaultCycleDays: 15,
			Currency:         "USD",
		},
		Store: StoreConfig{
			DBPath: "./arbitrage.db",
		},
		Log: LogConfig{
			Level:      "info",
			Pretty:     true,
			AuditFile:  "./audit.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
