package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Hooks HooksConfig

	PostgresURL        string
	PostgresSecretPath string

	// Path to the fields engine schema export; empty means the engine isn't available
	FieldSchemaPath string
	CommerceEnabled bool
	HTTPTimeout     time.Duration

	LogLevel        log.Level
	LogFormat       LogFormat
	TestModeEnabled bool
}

type HooksConfig struct {
	Port            int
	HealthcheckPort int
}

type LogFormat string

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

type EnvfileKey string

const (
	// Postgres connection string to use for database connections
	EnvfileKeyPostgresURL = "POSTGRES_URL"
	// AWS Secrets Manager path where Postgres connection string can be found
	EnvfileKeyPostgresSecretsPath = "POSTGRES_SECRETS_PATH"

	// YAML export of the fields engine's meta boxes, post types and taxonomies
	EnvfileKeyFieldSchemaPath = "FIELD_SCHEMA_PATH"
	// Resolve product references through the commerce REST API
	EnvfileKeyCommerceEnabled = "COMMERCE_ENABLED"
	// Timeout for requests to destination sites, in seconds
	EnvfileKeyHTTPTimeout = "HTTP_TIMEOUT"

	// Port the crosspost pipeline sends payloads to
	EnvfileKeyHookServerPort = "HOOK_SERVER_PORT"
	// Port for the healthcheck and metrics endpoints
	EnvfileKeyHealthcheckPort = "HEALTHCHECK_PORT"

	// Log level (e.g. "debug", "info", "warn", "error")
	EnvfileKeyLogLevel = "LOG_LEVEL"
	// Log output format (e.g. "text", "json")
	EnvfileKeyLogFormat = "LOG_FORMAT"
	// Enables "test mode" (attachments are never uploaded to destinations)
	EnvfileKeyTestMode = "TEST_MODE"
)

func FromEnvfile() Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("dotenv")

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	logLevel, err := log.ParseLevel(getConfigString(EnvfileKeyLogLevel))
	if err != nil {
		// Default to info level but log a warning
		log.Warnf("unable to parse log level: %v", err)
		logLevel = log.InfoLevel
	}

	logFormat, err := parseLogFormat(getConfigString(EnvfileKeyLogFormat))
	if err != nil {
		// Default to text formatter but log a warning
		log.Warnf("unable to parse log format: %v", err)
		logFormat = LogFormatText
	}

	postgresURL := getConfigString(EnvfileKeyPostgresURL)
	postgresSecretsPath := getConfigString(EnvfileKeyPostgresSecretsPath)
	if postgresURL == "" && postgresSecretsPath == "" {
		log.Fatal("postgres not configured")
	}

	fieldSchemaPath := getConfigString(EnvfileKeyFieldSchemaPath)
	if fieldSchemaPath == "" {
		log.Warn("no field schema configured, payloads will pass through unchanged")
	}

	return Config{
		Hooks: HooksConfig{
			Port:            getConfigIntOrDefault(EnvfileKeyHookServerPort, 8081),
			HealthcheckPort: getConfigIntOrDefault(EnvfileKeyHealthcheckPort, 8080),
		},
		PostgresURL:        postgresURL,
		PostgresSecretPath: postgresSecretsPath,
		FieldSchemaPath:    fieldSchemaPath,
		CommerceEnabled:    getConfigBool(EnvfileKeyCommerceEnabled),
		HTTPTimeout:        time.Duration(getConfigIntOrDefault(EnvfileKeyHTTPTimeout, 30)) * time.Second,
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		TestModeEnabled:    getConfigBool(EnvfileKeyTestMode),
	}
}

// ConfigureLogging applies the log level and format to the global logger
func (c Config) ConfigureLogging() {
	log.SetLevel(c.LogLevel)
	switch c.LogFormat {
	case LogFormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

func parseLogFormat(raw string) (LogFormat, error) {
	switch strings.ToLower(raw) {
	case LogFormatJSON:
		return LogFormatJSON, nil
	case LogFormatText:
		return LogFormatText, nil
	default:
		return "", fmt.Errorf("unidentified log format: %s", raw)
	}
}

// Gets a config value as a string from env vars or a .env file
func getConfigString(key string) string {
	value := os.Getenv(key)
	if value == "" {
		value = viper.GetString(key)
	}
	return value
}

// Gets a config value as an int from env vars or a .env file
func getConfigInt(key string) int {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return viper.GetInt(key)
	}
	value, err := strconv.Atoi(envVarValue)
	if err != nil {
		return 0
	}
	return value
}

func getConfigIntOrDefault(key string, fallback int) int {
	if value := getConfigInt(key); value > 0 {
		return value
	}
	return fallback
}

// Gets a config value as a bool from env vars or a .env file
func getConfigBool(key string) bool {
	envVarValue := os.Getenv(key)
	if envVarValue == "" {
		return viper.GetBool(key)
	}
	value, err := strconv.ParseBool(envVarValue)
	if err != nil {
		return false
	}
	return value
}
