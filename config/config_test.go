package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Trading.Currency)
	assert.Equal(t, "0.35", cfg.Trading.CommissionPct.String())
	assert.Equal(t, 5, cfg.Trading.MaxSalesPerDay)
	assert.Equal(t, 15, cfg.Trading.DefaultCycleDays)
	assert.NoError(t, cfg.Validate())

	p := cfg.Trading.Policy()
	assert.Equal(t, 3, p.MinSalesPerDay)
	assert.True(t, p.TargetProfitPct.Equal(decimal.NewFromInt(2)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "commission too high",
			mutate:  func(c *Config) { c.Trading.CommissionPct = decimal.NewFromInt(100) },
			wantErr: true,
			errMsg:  "trading.commission_pct must be between 0 and 100",
		},
		{
			name:    "negative target",
			mutate:  func(c *Config) { c.Trading.TargetProfitPct = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "trading.target_profit_pct must not be negative",
		},
		{
			name:    "zero max sales",
			mutate:  func(c *Config) { c.Trading.MaxSalesPerDay = 0 },
			wantErr: true,
			errMsg:  "trading.max_sales_per_day must be positive",
		},
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.Trading.MinSalesPerDay = 6 },
			wantErr: true,
			errMsg:  "trading.min_sales_per_day",
		},
		{
			name:    "zero cycle days",
			mutate:  func(c *Config) { c.Trading.DefaultCycleDays = 0 },
			wantErr: true,
			errMsg:  "trading.default_cycle_days must be positive",
		},
		{
			name:    "missing currency",
			mutate:  func(c *Config) { c.Trading.Currency = "" },
			wantErr: true,
			errMsg:  "trading.currency is required",
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Trading.Currency = "XXQ" },
			wantErr: true,
			errMsg:  "unknown currency",
		},
		{
			name:    "missing db path",
			mutate:  func(c *Config) { c.Store.DBPath = "" },
			wantErr: true,
			errMsg:  "store.db_path is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "audit without size",
			mutate:  func(c *Config) { c.Log.MaxSizeMB = 0 },
			wantErr: true,
			errMsg:  "log.max_size_mb",
		},
		{
			name:    "no audit file",
			mutate:  func(c *Config) { c.Log.AuditFile = ""; c.Log.MaxSizeMB = 0 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Trading.CommissionPct = decimal.RequireFromString("0.25")
			path := filepath.Join(tmpDir, "test"+tt.ext)

			// Save
			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			// Verify file exists
			_, err = os.Stat(path)
			require.NoError(t, err)

			// Load
			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			// Compare
			assert.Equal(t, cfg.Trading.Currency, loaded.Trading.Currency)
			assert.True(t, cfg.Trading.CommissionPct.Equal(loaded.Trading.CommissionPct))
			assert.True(t, cfg.Trading.TargetProfitPct.Equal(loaded.Trading.TargetProfitPct))
			assert.Equal(t, cfg.Trading.MaxSalesPerDay, loaded.Trading.MaxSalesPerDay)
			assert.Equal(t, cfg.Store.DBPath, loaded.Store.DBPath)
			assert.Equal(t, cfg.Log, loaded.Log)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trading:\n  max_sales_per_day: 8\n  commission_pct: 0.5\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Trading.MaxSalesPerDay)
	assert.Equal(t, "0.5", cfg.Trading.CommissionPct.String())
	assert.Equal(t, 3, cfg.Trading.MinSalesPerDay)
	assert.Equal(t, "./arbitrage.db", cfg.Store.DBPath)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trading:\n  max_sales_per_day: 0\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ARB_DB_PATH", "/tmp/env.db")
	t.Setenv("ARB_COMMISSION_PCT", "0.1%")
	t.Setenv("ARB_MAX_SALES_PER_DAY", "9")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ARB_CURRENCY=EUR\nARB_MAX_SALES_PER_DAY=2\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ARB_CURRENCY") })

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	assert.Equal(t, "/tmp/env.db", cfg.Store.DBPath)
	assert.Equal(t, "0.1", cfg.Trading.CommissionPct.String())
	// the process environment wins over the .env file
	assert.Equal(t, 9, cfg.Trading.MaxSalesPerDay)
	assert.Equal(t, "EUR", cfg.Trading.Currency)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvMissingFileIgnored(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env")))
	assert.Equal(t, Default().Store.DBPath, cfg.Store.DBPath)
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv("ARB_CYCLE_DAYS", "fifteen")

	cfg := Default()
	err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env"))
	assert.ErrorContains(t, err, "ARB_CYCLE_DAYS")
}
