package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		AppURL:          "127.0.0.1:8080",
		DatabaseDriver:  "sqlite",
		DatabaseDSN:     "file::memory:",
		JWTSecret:       "secret",
		AdminUserID:     "admin",
		RateLimit:       60,
		MutationRetries: 3,
		SyncPollSeconds: 5,
		Wallet: WalletConfig{
			NewUserBalance:    10,
			WithdrawMinAmount: 50,
			WithdrawFee:       10,
			DepositMinAmount:  1,
		},
		Sweep: SweepConfig{Workers: 1, QueueSize: 1, IntervalSeconds: 1, BatchSize: 1},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("IDENTITY_JWT_SECRET", "secret")
	t.Setenv("ADMIN_USER_ID", "admin-uid")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.False(t, cfg.RedisEnabled)
	assert.True(t, cfg.Wallet.TaskEscrow)
	assert.EqualValues(t, 10, cfg.Wallet.NewUserBalance)
	assert.EqualValues(t, 50, cfg.Wallet.WithdrawMinAmount)
	assert.EqualValues(t, 10, cfg.Wallet.WithdrawFee)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30, cfg.Sweep.IntervalSeconds)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IDENTITY_JWT_SECRET", "secret")
	t.Setenv("ADMIN_USER_ID", "admin-uid")
	t.Setenv("TASK_ESCROW_ENABLED", "false")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.False(t, cfg.Wallet.TaskEscrow)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]func(*Config){
		"missing secret":       func(c *Config) { c.JWTSecret = "" },
		"missing admin":        func(c *Config) { c.AdminUserID = "" },
		"unknown driver":       func(c *Config) { c.DatabaseDriver = "oracle" },
		"fee eats minimum":     func(c *Config) { c.Wallet.WithdrawMinAmount = 10 },
		"no sweep workers":     func(c *Config) { c.Sweep.Workers = 0 },
		"zero retries":         func(c *Config) { c.MutationRetries = 0 },
		"zero deposit minimum": func(c *Config) { c.Wallet.DepositMinAmount = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestOpenDatabase_RejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase("oracle", "x", false)
	assert.Error(t, err)
}

func TestOpenDatabase_MigratesSqlite(t *testing.T) {
	db, err := OpenDatabase("sqlite", "file:configs_test?mode=memory&cache=shared", true)
	require.NoError(t, err)

	for _, table := range []string{"users", "groups", "tasks", "transactions", "withdrawals", "wallet_entries"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
