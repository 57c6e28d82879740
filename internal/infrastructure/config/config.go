package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

type Config struct {
	Port           string        `yaml:"port"`
	StoragePath    string        `yaml:"storage_path"`
	MaxFileSize    int64         `yaml:"max_file_size"`
	MaxPreviewSize int64         `yaml:"max_preview_size"`
	DatabasePath   string        `yaml:"database_path"`
	BaseURL        string        `yaml:"base_url"`
	FrontendURL    string        `yaml:"frontend_url"`
	TokenExpiry    int           `yaml:"token_expiry_hours"`
	SessionCache   int           `yaml:"session_cache_size"`
	SessionTTL     time.Duration `yaml:"session_cache_ttl"`
	ShutdownAfter  time.Duration `yaml:"shutdown_timeout"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	DefaultRole    string        `yaml:"default_role"`

	// Google OAuth
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
}

// Defaults returns the configuration used when nothing is overridden
func Defaults() *Config {
	return &Config{
		Port:           "8005",
		StoragePath:    "./UserFiles",
		MaxFileSize:    100 << 20, // 100MB
		MaxPreviewSize: 10 << 20,
		DatabasePath:   "./data/filehub.db",
		BaseURL:        "http://localhost:8005",
		FrontendURL:    "http://localhost:5173",
		TokenExpiry:    24,
		SessionCache:   1024,
		SessionTTL:     time.Minute,
		ShutdownAfter:  10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
		DefaultRole:    "user",
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.StoragePath = getEnv("STORAGE_PATH", cfg.StoragePath)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.DefaultRole = getEnv("DEFAULT_ROLE", cfg.DefaultRole)
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", cfg.GoogleClientID)
	cfg.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", cfg.GoogleClientSecret)

	var err error
	if cfg.MaxFileSize, err = getEnvAsInt64("MAX_FILE_SIZE", cfg.MaxFileSize); err != nil {
		return nil, err
	}
	if cfg.MaxPreviewSize, err = getEnvAsInt64("MAX_PREVIEW_SIZE", cfg.MaxPreviewSize); err != nil {
		return nil, err
	}
	expiry, err := getEnvAsInt64("TOKEN_EXPIRY_HOURS", int64(cfg.TokenExpiry))
	if err != nil {
		return nil, err
	}
	cfg.TokenExpiry = int(expiry)
	cacheSize, err := getEnvAsInt64("SESSION_CACHE_SIZE", int64(cfg.SessionCache))
	if err != nil {
		return nil, err
	}
	cfg.SessionCache = int(cacheSize)
	if cfg.SessionTTL, err = getEnvAsDuration("SESSION_CACHE_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.ShutdownAfter, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownAfter); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("STORAGE_PATH: must not be empty")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE: must be positive")
	}
	if c.MaxPreviewSize <= 0 {
		return fmt.Errorf("MAX_PREVIEW_SIZE: must be positive")
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY_HOURS: must be positive")
	}
	if c.SessionCache <= 0 {
		return fmt.Errorf("SESSION_CACHE_SIZE: must be positive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DefaultRole != "user" && c.DefaultRole != "viewer" {
		return fmt.Errorf("DEFAULT_ROLE: invalid value %q, expected user or viewer", c.DefaultRole)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT: invalid value %q, expected json or text", c.LogFormat)
	}
	return nil
}

// GoogleEnabled reports whether Google sign-in is configured
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// SetupLogger creates the process logger and installs it as the slog default
func SetupLogger(cfg *Config) *slog.Logger {
	level, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: invalid value %q", s)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
