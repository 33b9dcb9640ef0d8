package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Logger    LoggerConfig
	Seed      SeedConfig
	Recipes   RecipeConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig selects and configures the durable key-value store driver.
type StoreConfig struct {
	Driver string // "file", "memory", "redis" or "postgres"

	// file driver
	DataDir string

	// redis driver
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// postgres driver
	PGHost            string
	PGPort            int
	PGUser            string
	PGPassword        string
	PGDatabase        string
	PGMaxConnections  int
	PGMinConnections  int
	PGConnLifetimeSec int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// SeedConfig holds configuration for the initial catalogue seed, loaded from
// local JSON files or from S3 with local fallback.
type SeedConfig struct {
	ProductsFile   string
	OffersFile     string
	CategoriesFile string
	S3Enabled      bool
	S3Bucket       string
	S3Region       string
	S3Prefix       string
}

// RecipeConfig holds configuration for the external recipe-suggestion
// service. Disabled unless an API key is set.
type RecipeConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether recipe suggestions should be requested at all.
func (c *RecipeConfig) Enabled() bool {
	return c.APIKey != ""
}

// RateLimitConfig holds per-IP rate limiting for the login endpoint.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			Driver:            getEnv("STORE_DRIVER", "file"),
			DataDir:           getEnv("STORE_DATA_DIR", "data/store"),
			RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:     getEnv("REDIS_PASSWORD", ""),
			RedisDB:           getEnvAsInt("REDIS_DB", 0),
			PGHost:            getEnv("DB_HOST", "localhost"),
			PGPort:            getEnvAsInt("DB_PORT", 5432),
			PGUser:            getEnv("DB_USER", "postgres"),
			PGPassword:        getEnv("DB_PASSWORD", ""),
			PGDatabase:        getEnv("DB_NAME", "vanphal"),
			PGMaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			PGMinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			PGConnLifetimeSec: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Seed: SeedConfig{
			ProductsFile:   getEnv("SEED_PRODUCTS_FILE", "data/seed/products.json"),
			OffersFile:     getEnv("SEED_OFFERS_FILE", "data/seed/offers.json"),
			CategoriesFile: getEnv("SEED_CATEGORIES_FILE", "data/seed/categories.json"),
			S3Enabled:      getEnvAsBool("SEED_S3_ENABLED", false),
			S3Bucket:       getEnv("SEED_S3_BUCKET", ""),
			S3Region:       getEnv("SEED_S3_REGION", "ap-south-1"),
			S3Prefix:       getEnv("SEED_S3_PREFIX", "seed/"),
		},
		Recipes: RecipeConfig{
			BaseURL: getEnv("RECIPE_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
			APIKey:  getEnv("RECIPE_API_KEY", ""),
			Model:   getEnv("RECIPE_API_MODEL", "gemini-3-flash-preview"),
			Timeout: time.Duration(getEnvAsInt("RECIPE_API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case "memory":
	case "file":
		if c.Store.DataDir == "" {
			return fmt.Errorf("data directory is required for the file store")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis store")
		}
	case "postgres":
		if c.Store.PGHost == "" {
			return fmt.Errorf("database host is required for the postgres store")
		}
		if c.Store.PGPort < 1 || c.Store.PGPort > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Store.PGPort)
		}
		if c.Store.PGUser == "" {
			return fmt.Errorf("database user is required for the postgres store")
		}
		if c.Store.PGDatabase == "" {
			return fmt.Errorf("database name is required for the postgres store")
		}
		if c.Store.PGMinConnections < 1 || c.Store.PGMaxConnections < 1 {
			return fmt.Errorf("database connection counts must be at least 1")
		}
		if c.Store.PGMinConnections > c.Store.PGMaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be memory, file, redis or postgres)", c.Store.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Seed.S3Enabled {
		if c.Seed.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when seed S3 is enabled")
		}
		if c.Seed.S3Region == "" {
			return fmt.Errorf("S3 region is required when seed S3 is enabled")
		}
	}

	if c.RateLimit.LoginPerMinute < 1 {
		return fmt.Errorf("login rate limit must be at least 1 per minute")
	}

	return nil
}

// PGConnectionString returns the PostgreSQL connection string.
func (c *StoreConfig) PGConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser,
		c.PGPassword,
		c.PGHost,
		c.PGPort,
		c.PGDatabase,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
