package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	RequestTimeout  int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for cart and order mutations
}

type CatalogConfig struct {
	DefaultParPage int
}

type CartConfig struct {
	ShippingFeePerSeller float64
	MaxLineQuantity      int // Most units a single cart row may hold
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Catalog: CatalogConfig{
			DefaultParPage: getEnvAsInt("CATALOG_DEFAULT_PAR_PAGE", 9),
		},
		Cart: CartConfig{
			ShippingFeePerSeller: getEnvAsFloat("CART_SHIPPING_FEE_PER_SELLER", 20),
			MaxLineQuantity:      getEnvAsInt("CART_MAX_LINE_QUANTITY", 1000),
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

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Catalog.DefaultParPage < 1 {
		return fmt.Errorf("CATALOG_DEFAULT_PAR_PAGE must be positive, got %d", c.Catalog.DefaultParPage)
	}

	if c.Cart.ShippingFeePerSeller < 0 {
		return fmt.Errorf("CART_SHIPPING_FEE_PER_SELLER cannot be negative, got %v", c.Cart.ShippingFeePerSeller)
	}

	if c.Cart.MaxLineQuantity < 1 {
		return fmt.Errorf("CART_MAX_LINE_QUANTITY must be positive, got %d", c.Cart.MaxLineQuantity)
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
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

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
