package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCouncil is the ordered list of models convened when COUNCIL_MEMBERS is not set.
var DefaultCouncil = []string{
	"openai/gpt-oss-20b:nebius",
	"meta-llama/Llama-3.1-8B-Instruct:novita",
	"Qwen/Qwen2.5-7B-Instruct:together",
	"deepseek-ai/DeepSeek-R1:novita",
}

const (
	// DefaultModel is the model used by the single-query driver.
	DefaultModel = "openai/gpt-oss-20b:nebius"
	// DefaultMaxTokens caps each council member's answer.
	DefaultMaxTokens = 500
)

// Config holds all configuration for the application.
type Config struct {
	HFToken        string
	APIURL         string
	CouncilMembers []string
	DefaultModel   string
	MaxTokens      int
	RequestTimeout time.Duration
	DBPath         string
	APIPort        string
	LogLevel       slog.Level
	LogFormat      string
	Markdown       bool
}

// HistoryEnabled reports whether runs should be persisted.
func (c *Config) HistoryEnabled() bool {
	return c.DBPath != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		HFToken:      getEnv("HF_TOKEN", ""),
		APIURL:       getEnv("API_URL", ""),
		DefaultModel: getEnv("DEFAULT_MODEL", DefaultModel),
		DBPath:       os.Getenv("DB_PATH"),
		APIPort:      getEnv("API_PORT", "9000"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
	if _, set := os.LookupEnv("DB_PATH"); !set {
		cfg.DBPath = "./data/council.db"
	}

	if cfg.HFToken == "" {
		return nil, fmt.Errorf("HF_TOKEN is required")
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}

	cfg.CouncilMembers = parseMembers(getEnv("COUNCIL_MEMBERS", ""))
	if len(cfg.CouncilMembers) == 0 {
		cfg.CouncilMembers = append([]string(nil), DefaultCouncil...)
	}

	maxTokens, err := strconv.Atoi(getEnv("MAX_TOKENS", strconv.Itoa(DefaultMaxTokens)))
	if err != nil {
		return nil, fmt.Errorf("MAX_TOKENS must be a valid integer: %w", err)
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("MAX_TOKENS must be greater than 0")
	}
	cfg.MaxTokens = maxTokens

	if raw := getEnv("REQUEST_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("REQUEST_TIMEOUT must be a valid duration: %w", err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("REQUEST_TIMEOUT must not be negative")
		}
		cfg.RequestTimeout = timeout
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if raw := getEnv("RENDER_MARKDOWN", ""); raw != "" {
		md, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("RENDER_MARKDOWN must be a boolean: %w", err)
		}
		cfg.Markdown = md
	}

	if cfg.HistoryEnabled() {
		// Create the directory holding the history database
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// loadDotEnv loads the nearest .env file, walking up from the working directory.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// parseMembers splits a comma separated model list, dropping blanks.
func parseMembers(raw string) []string {
	var members []string
	for _, part := range strings.Split(raw, ",") {
		if m := strings.TrimSpace(part); m != "" {
			members = append(members, m)
		}
	}
	return members
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", raw)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
