package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables, with development-friendly defaults.
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Upload UploadConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// UploadConfig describes the local asset store namespace.
// Dir is created lazily on the first write.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "5000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB", "bookshelf"),
			ConnectTimeout: time.Duration(getEnvInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxPoolSize:    uint64(getEnvInt("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:    uint64(getEnvInt("MONGO_MIN_POOL_SIZE", 1)),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "./uploads"),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for values the app cannot run with.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
