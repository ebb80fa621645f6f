package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-based settings
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	ServerAddress  string
	RedisAddress   string
	RedisUsername  string
	RedisPassword  string
	RolloverTime   string
}

// Load reads configuration from the environment, honoring a .env file if
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	migrations := os.Getenv("MIGRATIONS_PATH")
	if migrations == "" {
		migrations = "./migrations"
	}
	rollover := os.Getenv("ROLLOVER_TIME")
	if rollover == "" {
		rollover = "00:05"
	}
	return &Config{
		DatabaseURL:    dbURL,
		MigrationsPath: migrations,
		ServerAddress:  addr,
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisUsername:  os.Getenv("REDIS_USERNAME"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RolloverTime:   rollover,
	}, nil
}
