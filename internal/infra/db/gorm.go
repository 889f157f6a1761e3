package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tienda/internal/config"
)

// Connect opens the store selected by the config. Postgres is the normal
// deployment; sqlite exists for local runs and tests.
func Connect(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	case "postgres":
		if cfg.DatabaseURL != "" {
			return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		}
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
			cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}
