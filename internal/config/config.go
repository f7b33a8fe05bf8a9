package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// app config, read once from the environment at startup
type Config struct {
	Port           string
	LogLevel       string
	Provider       string
	AllowedOrigins []string

	DBDriver   string
	SQLitePath string
	Postgres   PostgresConfig
	StoreKey   string

	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	AdminUsername string
	AdminPassword string

	AnalysisCacheTTL time.Duration
	SnowflakeNode    int64

	Backup BackupConfig
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
}

// DSN renders the connection string accepted by the postgres driver.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type BackupConfig struct {
	Enabled  bool
	Schedule string // cron spec, e.g. "0 3 * * *"
	Dir      string
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		LogLevel:       strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Provider:       getEnvOrDefault("AI_PROVIDER", "gemini"),
		AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		DBDriver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", "sqlite")),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", "solverpro.db"),
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("POSTGRES_DB", "postgres"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		StoreKey: getEnvOrDefault("STORE_KEY", "solverpro_problems"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),

		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "admin123"),

		AnalysisCacheTTL: getEnvDuration("ANALYSIS_CACHE_TTL", 30*time.Minute),
		SnowflakeNode:    int64(getEnvInt("SNOWFLAKE_NODE", 1)),

		Backup: BackupConfig{
			Enabled:  getEnvOrDefault("BACKUP_ENABLED", "false") == "true",
			Schedule: getEnvOrDefault("BACKUP_SCHEDULE", "0 3 * * *"),
			Dir:      getEnvOrDefault("BACKUP_DIR", "./backups"),
		},
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		return errors.New("unsupported DB_DRIVER: " + config.DBDriver + ". Use sqlite or postgres")
	}
	if config.StoreKey == "" {
		return errors.New("STORE_KEY must not be empty")
	}
	if config.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if config.SnowflakeNode < 0 || config.SnowflakeNode > 1023 {
		return fmt.Errorf("SNOWFLAKE_NODE must be between 0 and 1023, got %d", config.SnowflakeNode)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
