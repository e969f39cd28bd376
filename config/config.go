// Package config provides configuration management for the application.
// It loads and validates configuration values from environment variables,
// with support for required variables, default values, and collective error
// reporting. The resulting AppConfig is built once at startup and handed to
// every component explicitly; nothing else reads the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/user/minilinkedin-go/apperror"
)

const (
	// DefaultTokenDuration is how long a session token stays valid.
	DefaultTokenDuration = 7 * 24 * time.Hour
	// MinBcryptCost is the lowest accepted password hashing work factor.
	MinBcryptCost = 12
	// MaxBcryptCost mirrors bcrypt's own upper bound.
	MaxBcryptCost = 31

	minPoolSize = 5
	maxPoolSize = 100
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL      string // Full connection string; overrides the individual parts when set
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// DSN returns the connection string for the database.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing JWTs
	TokenDuration time.Duration // Lifetime of an issued session token
	BcryptCost    int           // Password hashing work factor
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port        string // Port for the HTTP server
	FrontendURL string // Single origin allowed by CORS
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *DatabaseConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Log    *LogConfig
}

// getRequiredEnv returns the value of a required variable.
// An unset or blank variable is recorded in errors.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// getOptionalEnvDuration parses strings like "15m" or "168h".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	if valueDuration <= 0 {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: duration must be positive, got '%s'", key, valueStr))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the pool size between 5 and 100.
func clampPoolSize(size int) int {
	if size < minPoolSize {
		return minPoolSize
	}
	if size > maxPoolSize {
		return maxPoolSize
	}
	return size
}

// clampBcryptCost raises weak work factors to the minimum and rejects values
// bcrypt itself would refuse.
func clampBcryptCost(cost int, errors *[]string) int {
	if cost > MaxBcryptCost {
		*errors = append(*errors, fmt.Sprintf("invalid value for BCRYPT_COST: %d exceeds maximum %d", cost, MaxBcryptCost))
		return MinBcryptCost
	}
	if cost < MinBcryptCost {
		return MinBcryptCost
	}
	return cost
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single error if any exist. A missing JWT_SECRET is one of
// them: there is no fallback signing secret.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database Configuration
	dbConfig := &DatabaseConfig{
		URL:     getOptionalEnv("DATABASE_URL", ""),
		Host:    getOptionalEnv("DB_HOST", "localhost"),
		Port:    getOptionalEnvInt("DB_PORT", 5432, &errors),
		MaxSize: clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors)),
	}
	if dbConfig.URL == "" {
		dbConfig.User = getRequiredEnv("DB_USER", &errors)
		dbConfig.Password = getRequiredEnv("DB_PASSWORD", &errors)
		dbConfig.DBName = getRequiredEnv("DB_NAME", &errors)
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:     getRequiredEnv("JWT_SECRET", &errors),
		TokenDuration: getOptionalEnvDuration("JWT_TOKEN_DURATION", DefaultTokenDuration, &errors),
		BcryptCost:    clampBcryptCost(getOptionalEnvInt("BCRYPT_COST", MinBcryptCost, &errors), &errors),
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		Port:        getOptionalEnv("PORT", "5000"),
		FrontendURL: getOptionalEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	logConfig := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Pretty: getOptionalEnvBool("LOG_PRETTY", false, &errors),
	}

	if len(errors) > 0 {
		return nil, apperror.NewConfigError("configuration errors:\n- "+strings.Join(errors, "\n- "), nil)
	}

	return &AppConfig{
		DB:     dbConfig,
		Auth:   authConfig,
		Server: serverConfig,
		Log:    logConfig,
	}, nil
}
