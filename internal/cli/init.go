// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/vendas and cmd/vendas-ingest.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"vendas/internal/config"
	"vendas/internal/log"
	"vendas/internal/store"
	"vendas/internal/store/memory"
	"vendas/internal/store/postgres"
	"vendas/internal/store/sqlite"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured data backend. The memory backend gets
// a seeded development login since it has no other way to create users;
// the plaintext credential is upgraded to bcrypt on first login.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return sqlite.New(cfg.SQLiteDBPath)
	case "postgres":
		return postgres.New(ctx, cfg.PostgresURL)
	default:
		st := memory.New()
		st.SeedUser(store.UserRecord{
			ID:           "1",
			Email:        envOr("DEV_USER_EMAIL", "admin@vendas.local"),
			PasswordHash: envOr("DEV_USER_PASSWORD", "vendas-dev"),
		})
		return st, nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
