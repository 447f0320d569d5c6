package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: fomenta)

	TokenSecretFile string // Path to the HS256 signing secret file (default: ./token.secret)
	PepperFile      string // Path to the password-hashing pepper file (default: ./pepper)
	DatabaseFile    string // Path to the SQLite database file (default: ./fomenta.db)

	BootstrapTenant   string // Optional: municipality name seeded on first run
	BootstrapEmail    string // Optional: initial staff admin email
	BootstrapPassword string // Optional: initial staff admin password

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return Config{
		Issuer:               getEnvOrDefault("FOMENTA_ISSUER", "fomenta"),
		TokenSecretFile:      getEnvOrDefault("FOMENTA_TOKEN_SECRET_FILE", "token.secret"),
		PepperFile:           getEnvOrDefault("FOMENTA_PEPPER_FILE", "pepper"),
		DatabaseFile:         getEnvOrDefault("FOMENTA_DATABASE_FILE", "fomenta.db"),
		BootstrapTenant:      os.Getenv("FOMENTA_BOOTSTRAP_TENANT"),
		BootstrapEmail:       os.Getenv("FOMENTA_BOOTSTRAP_EMAIL"),
		BootstrapPassword:    os.Getenv("FOMENTA_BOOTSTRAP_PASSWORD"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
