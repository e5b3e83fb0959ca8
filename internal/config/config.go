package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDriver     string   `validate:"oneof=sqlite3 postgres"`
	DatabaseURL        string   `validate:"required"`
	HTTPPort           string   `validate:"required,numeric"`
	LogLevel           string   `validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat          string   `validate:"oneof=json text"`
	RateLimitRPS       int      `validate:"gte=0"`
	RateLimitBurst     int      `validate:"gte=0"`
	CORSAllowedOrigins []string `validate:"min=1,dive,required"`
	SeedApps           bool
}

// Load reads the environment (and a .env file when present) and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		DatabaseDriver:     getEnv("DATABASE_DRIVER", "sqlite3"),
		DatabaseURL:        getEnv("DATABASE_URL", "belac.db"),
		HTTPPort:           getEnv("HTTP_PORT", getEnv("PORT", "8080")),
		LogLevel:           strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "json")),
		RateLimitRPS:       getEnvAsInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SeedApps:           getEnvAsBool("SEED_APPS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
