package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath    string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES"`
		ReadTimeout    string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout    string `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Path            string `yaml:"path" env:"DB_PATH"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret       string `yaml:"secret" env:"SESSION_SECRET"`
		CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		TTL          string `yaml:"ttl" env:"SESSION_TTL"`
		SecureCookie bool   `yaml:"secure_cookie" env:"SESSION_SECURE_COOKIE"`
		Store        string `yaml:"store" env:"SESSION_STORE"`
		Issuer       string `yaml:"issuer" env:"SESSION_ISSUER"`
	} `yaml:"session"`

	Redis struct {
		URL string `yaml:"url" env:"REDIS_URL"`
	} `yaml:"redis"`

	AI struct {
		APIKey            string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model             string `yaml:"model" env:"AI_MODEL"`
		SystemInstruction string `yaml:"system_instruction" env:"AI_SYSTEM_INSTRUCTION"`
	} `yaml:"ai"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// DefaultSystemInstruction is the persona given to the study assistant.
const DefaultSystemInstruction = "You are a helpful AI study assistant for VIT Chennai engineering students. " +
	"Provide clear, accurate, and educational responses."

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; env alone is enough to run
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadBytes = 16 << 20
	config.Server.ReadTimeout = "30s"
	config.Server.WriteTimeout = "60s"
	config.Server.IdleTimeout = "120s"

	config.Database.Driver = DriverSQLite
	config.Database.Path = "studybuddy.db"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "studybuddy"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Session.CookieName = "studybuddy_session"
	config.Session.TTL = "744h"
	config.Session.Store = SessionStoreMemory
	config.Session.Issuer = "studybuddy"

	config.AI.Model = "gemini-2.5-flash"
	config.AI.SystemInstruction = DefaultSystemInstruction

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite3")
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}

	switch config.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if config.Redis.URL == "" {
			return fmt.Errorf("redis url is required when session store is redis")
		}
	default:
		return fmt.Errorf("unsupported session store %q", config.Session.Store)
	}

	if config.Server.StoragePath == "" {
		return fmt.Errorf("storage path is required")
	}

	if config.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	for name, value := range map[string]string{
		"read timeout":  config.Server.ReadTimeout,
		"write timeout": config.Server.WriteTimeout,
		"idle timeout":  config.Server.IdleTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid server %s: %w", name, err)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
