package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Corpus store backends
const (
	CorpusStorePostgres = "postgres"
	CorpusStoreDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	Env         string
	CorpusStore string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Typesense   TypesenseConfig
	DynamoDB    DynamoDBConfig
	Discovery   DiscoveryConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// DynamoDBConfig holds the document store configuration
type DynamoDBConfig struct {
	Region         string
	Endpoint       string
	ProvidersTable string
}

// DiscoveryConfig holds the radius search bounds
type DiscoveryConfig struct {
	MinRadiusKm     int
	MaxRadiusKm     int
	DefaultRadiusKm int
	RadiusStepKm    int
	FetchTimeout    time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		CorpusStore: getEnv("CORPUS_STORE", CorpusStorePostgres),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "doctor_finder"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		DynamoDB: DynamoDBConfig{
			Region:         getEnv("AWS_REGION", "us-east-1"),
			Endpoint:       getEnv("DYNAMODB_ENDPOINT", ""),
			ProvidersTable: getEnv("DYNAMODB_PROVIDERS_TABLE", "doctors"),
		},
		Discovery: DiscoveryConfig{
			MinRadiusKm:     getEnvAsInt("DISCOVERY_MIN_RADIUS_KM", 10),
			MaxRadiusKm:     getEnvAsInt("DISCOVERY_MAX_RADIUS_KM", 200),
			DefaultRadiusKm: getEnvAsInt("DISCOVERY_DEFAULT_RADIUS_KM", 100),
			RadiusStepKm:    getEnvAsInt("DISCOVERY_RADIUS_STEP_KM", 10),
			FetchTimeout:    getEnvAsDuration("DISCOVERY_FETCH_TIMEOUT", 5*time.Second),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "doctor-finder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected with a default
func (c *Config) Validate() error {
	d := c.Discovery
	if d.MinRadiusKm <= 0 {
		return fmt.Errorf("DISCOVERY_MIN_RADIUS_KM must be positive, got %d", d.MinRadiusKm)
	}
	if d.MaxRadiusKm < d.MinRadiusKm {
		return fmt.Errorf("DISCOVERY_MAX_RADIUS_KM (%d) is below DISCOVERY_MIN_RADIUS_KM (%d)", d.MaxRadiusKm, d.MinRadiusKm)
	}
	if d.DefaultRadiusKm < d.MinRadiusKm || d.DefaultRadiusKm > d.MaxRadiusKm {
		return fmt.Errorf("DISCOVERY_DEFAULT_RADIUS_KM (%d) is outside [%d, %d]", d.DefaultRadiusKm, d.MinRadiusKm, d.MaxRadiusKm)
	}
	if d.RadiusStepKm <= 0 {
		return fmt.Errorf("DISCOVERY_RADIUS_STEP_KM must be positive, got %d", d.RadiusStepKm)
	}

	switch c.CorpusStore {
	case CorpusStorePostgres, CorpusStoreDynamoDB:
	default:
		return fmt.Errorf("unknown CORPUS_STORE %q", c.CorpusStore)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
