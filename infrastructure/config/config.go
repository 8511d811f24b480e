package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"clutchdemo/pkg/utils"

	"github.com/joho/godotenv"
)

// DefaultTableName is the demo stack's data table. Override with TABLE_NAME.
const DefaultTableName = "hackathon-demo-DataTable-1GXOJ0HMUT9BJ"

// Config holds all application configuration
type Config struct {
	Environment string `validate:"required,oneof=development staging production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	// AWS configuration
	AWSRegion        string `validate:"required"`
	DynamoDBTable    string `validate:"required"`
	GSI1IndexName    string `validate:"required"`
	DynamoDBEndpoint string `validate:"omitempty,url"`
	EventBusName     string
	MetricsNamespace string

	// Seeding
	ClutchCount      int `validate:"min=1"`
	MinEggsPerClutch int `validate:"min=1,max=25"`
	MaxEggsPerClutch int `validate:"min=1,max=25,gtefield=MinEggsPerClutch"`
	Seed             uint64

	// Demo API
	ServerAddress      string
	AllowedOrigins     []string
	RateLimitPerMinute int `validate:"min=0"`

	// Feature flags
	PublishEvents bool
	EnableMetrics bool
	EnableTracing bool
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AWSRegion:        getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable:    getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", DefaultTableName)),
		GSI1IndexName:    getEnv("GSI1_INDEX_NAME", "GSI1"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		EventBusName:     getEnv("EVENT_BUS_NAME", "default"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", fmt.Sprintf("ClutchDemo/%s", env)),

		ClutchCount:      getEnvInt("CLUTCH_COUNT", 5),
		MinEggsPerClutch: getEnvInt("MIN_EGGS_PER_CLUTCH", 3),
		MaxEggsPerClutch: getEnvInt("MAX_EGGS_PER_CLUTCH", 8),
		Seed:             getEnvUint64("SEED", 0),

		ServerAddress:      getEnv("SERVER_ADDRESS", ":8080"),
		AllowedOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),

		PublishEvents: getEnvBool("PUBLISH_EVENTS", false),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks the configuration against its constraints
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvUint64 gets an unsigned integer environment variable with a default value
func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
