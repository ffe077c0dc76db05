package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Redis   RedisConfig
	Session SessionConfig
	Cache   CacheConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type SheetsConfig struct {
	SpreadsheetID   string
	WorksheetName   string
	CredentialsFile string
	CredentialsJSON string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type CacheConfig struct {
	ContributionTTL time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			WorksheetName:   getEnv("SHEETS_WORKSHEET_NAME", "USER_DATA"),
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
			CredentialsJSON: getEnv("SHEETS_CREDENTIALS_JSON", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "cfp_session"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		Cache: CacheConfig{
			ContributionTTL: time.Duration(getEnvInt("CONTRIBUTION_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
	}
	if c.Sheets.WorksheetName == "" {
		return fmt.Errorf("SHEETS_WORKSHEET_NAME is required")
	}
	if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
		return fmt.Errorf("one of SHEETS_CREDENTIALS_FILE or SHEETS_CREDENTIALS_JSON is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a valid port number")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.Cache.ContributionTTL <= 0 {
		return fmt.Errorf("CONTRIBUTION_CACHE_TTL_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
