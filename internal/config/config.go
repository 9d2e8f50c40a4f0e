package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Redis configuration, empty URL disables the title cache
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl" validate:"gt=0"`
	LockTTL     time.Duration `json:"lock_ttl" validate:"gt=0"`

	// Document store
	StoreDriver     string        `json:"store_driver" validate:"oneof=file memory postgres sqlite mongo s3"`
	StoragePath     string        `json:"storage_path" validate:"required_if=StoreDriver file"`
	PostgresDSN     string        `json:"-" validate:"required_if=StoreDriver postgres"`
	SQLitePath      string        `json:"sqlite_path" validate:"required_if=StoreDriver sqlite"`
	MongoURI        string        `json:"-" validate:"required_if=StoreDriver mongo"`
	MongoDatabase   string        `json:"mongo_database" validate:"required_if=StoreDriver mongo"`
	MongoCollection string        `json:"mongo_collection" validate:"required_if=StoreDriver mongo"`
	StoreRetries    int           `json:"store_retries" validate:"gte=0,lte=10"`
	StoreRetryWait  time.Duration `json:"store_retry_wait" validate:"gte=0"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-" validate:"required_if=StoreDriver s3"`
	R2SecretKey string `json:"-" validate:"required_if=StoreDriver s3"`
	R2Bucket    string `json:"r2_bucket" validate:"required_if=StoreDriver s3"`
	R2AccountID string `json:"r2_account_id"`

	// Ingestion
	FeedTimeout      time.Duration `json:"feed_timeout" validate:"gt=0"`
	FeedRetryCount   int           `json:"feed_retry_count" validate:"gte=0,lte=10"`
	DetailTimeout    time.Duration `json:"detail_timeout" validate:"gt=0"`
	UserAgent        string        `json:"user_agent" validate:"required"`
	ContentSelector  string        `json:"content_selector" validate:"required"`
	ItemsPerCategory int           `json:"items_per_category" validate:"min=1"`
	MaxConcurrency   int           `json:"max_concurrency" validate:"min=1,max=32"`
	RunTimeout       time.Duration `json:"run_timeout" validate:"gt=0"`
	SourceName       string        `json:"source_name" validate:"required"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from the environment (and an optional .env
// file) and validates it
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "haberci:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 720*time.Hour), // 30 days
		LockTTL:     getEnvAsDuration("LOCK_TTL", 30*time.Second),

		// Document store
		StoreDriver:     getEnv("STORE_DRIVER", "file"),
		StoragePath:     getEnv("STORAGE_PATH", "./data"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/articles.db"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "haberci"),
		MongoCollection: getEnv("MONGO_COLLECTION", "Articles"),
		StoreRetries:    getEnvAsInt("STORE_RETRIES", 3),
		StoreRetryWait:  getEnvAsDuration("STORE_RETRY_WAIT", 500*time.Millisecond),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "newsapi"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Ingestion
		FeedTimeout:      getEnvAsDuration("FEED_TIMEOUT", 10*time.Second),
		FeedRetryCount:   getEnvAsInt("FEED_RETRY_COUNT", 3),
		DetailTimeout:    getEnvAsDuration("DETAIL_TIMEOUT", 10*time.Second),
		UserAgent:        getEnv("USER_AGENT", "Mozilla/5.0"),
		ContentSelector:  getEnv("CONTENT_SELECTOR", ".news-content"),
		ItemsPerCategory: getEnvAsInt("ITEMS_PER_CATEGORY", 5),
		MaxConcurrency:   getEnvAsInt("MAX_CONCURRENCY", 1),
		RunTimeout:       getEnvAsDuration("RUN_TIMEOUT", 30*time.Minute),
		SourceName:       getEnv("SOURCE_NAME", "TRT Haber"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// R2 endpoint is derived from the account when not given explicitly
	if cfg.R2Endpoint == "" && cfg.R2AccountID != "" {
		cfg.R2Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.StoreDriver == "s3" && c.R2Endpoint == "" {
		return fmt.Errorf("R2_ENDPOINT or CLOUDFLARE_ACCOUNT_ID is required for the s3 store")
	}
	return nil
}

// LogOutput returns where the logger should write
func (c *Config) LogOutput() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return "stdout"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
