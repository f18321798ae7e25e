package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppURL                 string
	AppEnv                 string
	Timezone               string
	LogLevel               string
	DatabaseDriver         string
	DatabaseDSN            string
	RateLimit              int
	RedisEnabled           bool
	RedisAddr              string
	RedisKeyPrefix         string
	ShutdownTimeoutSeconds int
	JWTSecret              string
	AdminUserID            string
	CORSAllowedOrigins     []string
	SyncPollSeconds        int
	MutationRetries        int
	Wallet                 WalletConfig
	Sweep                  SweepConfig
}

type WalletConfig struct {
	NewUserBalance    int64
	TaskEscrow        bool
	WithdrawMinAmount int64
	WithdrawFee       int64
	DepositMinAmount  int64
}

type SweepConfig struct {
	Workers         int
	QueueSize       int
	IntervalSeconds int
	BatchSize       int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		AppEnv:                 getEnv("APP_ENV", "development"),
		Timezone:               getEnv("TZ", "Asia/Kolkata"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DatabaseDriver:         getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "gigcircle.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisEnabled:           getEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "gigcircle"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		JWTSecret:              getEnv("IDENTITY_JWT_SECRET", ""),
		AdminUserID:            getEnv("ADMIN_USER_ID", ""),
		CORSAllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SyncPollSeconds:        getEnvAsInt("SYNC_POLL_INTERVAL_SECONDS", 5),
		MutationRetries:        getEnvAsInt("MUTATION_RETRIES", 3),
		Wallet: WalletConfig{
			NewUserBalance:    int64(getEnvAsInt("NEW_USER_WALLET", 10)),
			TaskEscrow:        getEnvAsBool("TASK_ESCROW_ENABLED", true),
			WithdrawMinAmount: int64(getEnvAsInt("WITHDRAW_MIN_AMOUNT", 50)),
			WithdrawFee:       int64(getEnvAsInt("WITHDRAW_PLATFORM_FEE", 10)),
			DepositMinAmount:  int64(getEnvAsInt("DEPOSIT_MIN_AMOUNT", 1)),
		},
		Sweep: SweepConfig{
			Workers:         getEnvAsInt("SWEEP_WORKERS", 2),
			QueueSize:       getEnvAsInt("SWEEP_QUEUE_SIZE", 64),
			IntervalSeconds: getEnvAsInt("SWEEP_INTERVAL_SECONDS", 30),
			BatchSize:       getEnvAsInt("SWEEP_BATCH_SIZE", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Validate reports the first unusable setting.
func (cfg Config) Validate() error {
	switch {
	case cfg.AppURL == "":
		return fmt.Errorf("APP_HOST/APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	case cfg.DatabaseDSN == "":
		return fmt.Errorf("DATABASE_DSN must not be empty")
	case cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "mysql":
		return fmt.Errorf("DATABASE_DRIVER must be one of sqlite, postgres, mysql")
	case cfg.JWTSecret == "":
		return fmt.Errorf("IDENTITY_JWT_SECRET must not be empty")
	case cfg.AdminUserID == "":
		return fmt.Errorf("ADMIN_USER_ID must not be empty")
	case cfg.RateLimit <= 0:
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	case cfg.MutationRetries <= 0:
		return fmt.Errorf("MUTATION_RETRIES must be greater than 0")
	case cfg.SyncPollSeconds <= 0:
		return fmt.Errorf("SYNC_POLL_INTERVAL_SECONDS must be greater than 0")
	case cfg.Wallet.NewUserBalance < 0:
		return fmt.Errorf("NEW_USER_WALLET must not be negative")
	case cfg.Wallet.WithdrawFee < 0:
		return fmt.Errorf("WITHDRAW_PLATFORM_FEE must not be negative")
	case cfg.Wallet.WithdrawMinAmount <= cfg.Wallet.WithdrawFee:
		return fmt.Errorf("WITHDRAW_MIN_AMOUNT must be greater than WITHDRAW_PLATFORM_FEE")
	case cfg.Wallet.DepositMinAmount <= 0:
		return fmt.Errorf("DEPOSIT_MIN_AMOUNT must be greater than 0")
	case cfg.Sweep.Workers <= 0:
		return fmt.Errorf("SWEEP_WORKERS must be greater than 0")
	case cfg.Sweep.QueueSize <= 0:
		return fmt.Errorf("SWEEP_QUEUE_SIZE must be greater than 0")
	case cfg.Sweep.IntervalSeconds <= 0:
		return fmt.Errorf("SWEEP_INTERVAL_SECONDS must be greater than 0")
	case cfg.Sweep.BatchSize <= 0:
		return fmt.Errorf("SWEEP_BATCH_SIZE must be greater than 0")
	}
	return nil
}

func (cfg Config) IsProduction() bool {
	return cfg.AppEnv == "production"
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
