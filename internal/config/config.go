package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the process needs, read once at startup.
type Config struct {
	Port string `mapstructure:"PORT"`

	DBDriver    string `mapstructure:"DB_DRIVER"` // postgres | sqlite
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     int    `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB       string `mapstructure:"POSTGRES_DB"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`

	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// Empty disables the mutation broadcaster.
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
}

// Load reads configuration from the environment with sane defaults.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "tienda")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "tienda.db")
	v.SetDefault("RABBITMQ_URL", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}
