package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default upstream endpoints
const (
	DefaultIPEchoURL  = "https://api.ipify.org?format=json"
	DefaultGeoIPURL   = "https://freegeoip.app/json/"
	DefaultISSPassURL = "http://api.open-notify.org/iss-pass.json"
)

// Config holds all application configuration
type Config struct {
	// Upstream endpoints
	IPEchoURL  string `validate:"required,url"` // returns {"ip": "..."}
	GeoIPURL   string `validate:"required,url"` // the IP is appended to this base
	ISSPassURL string `validate:"required,url"` // lat/lon are added as query parameters

	// RequestTimeout bounds each upstream call, in seconds
	// 0 keeps the transport defaults (no client-side timeout)
	RequestTimeout int `validate:"gte=0"`

	// Server configuration (cmd/server only)
	Port string `validate:"required,numeric"`

	// Logging
	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error"`
	LogPretty bool
}

// Load reads configuration from environment variables
// with the literal upstream URLs as defaults
func Load() *Config {
	// Load .env file if it exists (for local development)
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		IPEchoURL:  getEnv("IP_ECHO_URL", DefaultIPEchoURL),
		GeoIPURL:   getEnv("GEOIP_URL", DefaultGeoIPURL),
		ISSPassURL: getEnv("ISS_PASS_URL", DefaultISSPassURL),

		RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT", 0),

		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}
}

// Validate checks the loaded values with struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
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

// getEnvAsBool reads an environment variable as a boolean
// Accepts anything strconv.ParseBool does (1, true, false, ...)
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
