package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment
// variables; a local .env file is honored for development.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	NATS     NATSConfig
	Pricing  PricingConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	AdminAPIKeys []string // valid API keys for the back office
}

// StoreConfig selects the persistence collaborator. Driver "memory" keeps
// everything in-process (seeded demo data); "mongo" uses MongoDB.
type StoreConfig struct {
	Driver   string
	MongoURI string
	MongoDB  string
}

type NATSConfig struct {
	URL string // empty disables event publishing and the admin feed
}

type PricingConfig struct {
	DeliveryFee int64 // kobo, charged on any non-empty cart
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			AdminAPIKeys: getEnvAsSlice("ADMIN_API_KEYS", []string{"apitest"}),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", "memory"),
			MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:  getEnv("MONGO_DB", "storefront"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Pricing: PricingConfig{
			DeliveryFee: int64(getEnvAsInt("DELIVERY_FEE", 500)),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.AdminAPIKeys) == 0 {
		return fmt.Errorf("at least one admin API key must be configured")
	}

	switch c.Store.Driver {
	case "memory":
	case "mongo":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER is mongo")
		}
		if c.Store.MongoDB == "" {
			return fmt.Errorf("MONGO_DB is required when STORE_DRIVER is mongo")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be memory or mongo)", c.Store.Driver)
	}

	if c.Pricing.DeliveryFee < 0 {
		return fmt.Errorf("DELIVERY_FEE must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
