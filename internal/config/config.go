package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Study data
	StoreDriver string
	PrimaryPath string
	SeedPath    string
	SetName     string
	ImageDir    string

	// Card timing
	FlipDelay        time.Duration
	FlipPollInterval time.Duration

	// Web sessions and HTTP
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int

	Database      DatabaseConfig
	MigrationsDir string

	// Telegram
	BotToken   string
	BotOwnerID int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		IsProduction: os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		StoreDriver: getEnv("STORE_DRIVER", DriverCSV),
		PrimaryPath: getEnv("DATA_PRIMARY", "data/to_learn_spanish.csv"),
		SeedPath:    getEnv("DATA_SEED", "data/spanish_words.csv"),
		SetName:     getEnv("DATA_SET_NAME", "default"),
		ImageDir:    getEnv("IMAGE_DIR", "static/images"),

		FlipDelay:        getEnvDuration("FLIP_DELAY", 3*time.Second),
		FlipPollInterval: getEnvDuration("FLIP_POLL_INTERVAL", 100*time.Millisecond),

		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "tarjeta"),
			User:     getEnv("DB_USER", "tarjeta"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		BotToken: os.Getenv("BOT_TOKEN"),
	}

	if owner := os.Getenv("BOT_OWNER_ID"); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("BOT_OWNER_ID must be a Telegram user id: %w", err)
		}
		cfg.BotOwnerID = id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverCSV:
		if c.PrimaryPath == "" {
			return fmt.Errorf("DATA_PRIMARY is required")
		}
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverCSV, DriverPostgres)
	}
	if c.FlipDelay <= 0 {
		return fmt.Errorf("FLIP_DELAY must be positive")
	}
	if c.FlipPollInterval <= 0 {
		return fmt.Errorf("FLIP_POLL_INTERVAL must be positive")
	}
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = 1
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Env names the runtime mode for logs and health checks.
func (c *Config) Env() string {
	if c.IsProduction {
		return "production"
	}
	return "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a time.Duration from the environment or returns a fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}

// getEnvInt reads an int from the environment or returns a fallback.
func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}
