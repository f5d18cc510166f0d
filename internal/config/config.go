// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "vendornexus.yaml"

type Config struct {
	ServerPort string `yaml:"server_port"`

	// Model gateway (any OpenAI-compatible chat completion endpoint).
	LLMAPIKey      string        `yaml:"llm_api_key"`
	LLMBaseURL     string        `yaml:"llm_base_url"`
	LLMModel       string        `yaml:"llm_model"`
	LLMTemperature float32       `yaml:"llm_temperature"`
	LLMTimeout     time.Duration `yaml:"llm_timeout"` // zero leaves model calls unbounded

	TelegramBotToken      string `yaml:"telegram_bot_token"`
	TelegramWebhookSecret string `yaml:"telegram_webhook_secret"`

	// Bot-side conversation cache.
	SessionBackend       string        `yaml:"session_backend"`
	SessionTTL           time.Duration `yaml:"session_ttl"`
	SessionPurgeSchedule string        `yaml:"session_purge_schedule"`
	HistoryLimit         int           `yaml:"history_limit"`

	DatabasePath  string `yaml:"database_path"`
	VaultBackend  string `yaml:"vault_backend"`
	VaultBoltPath string `yaml:"vault_bolt_path"`

	JWTSecretKey string   `yaml:"jwt_secret_key"`
	CORSOrigins  []string `yaml:"cors_origins"`

	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	Environment string `yaml:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		ServerPort:           "8080",
		LLMBaseURL:           "https://api.deepseek.com",
		LLMModel:             "deepseek-chat",
		LLMTemperature:       0.7,
		SessionBackend:       "memory",
		SessionTTL:           24 * time.Hour,
		SessionPurgeSchedule: "@every 10m",
		HistoryLimit:         12,
		DatabasePath:         "vendornexus.db",
		VaultBackend:         "sqlite",
		VaultBoltPath:        "vault.bolt",
		CORSOrigins:          []string{"*"},
		LogLevel:             "INFO",
	}
}

// Load reads configuration from an optional YAML file, a .env file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := Defaults()

	path := getEnv("VENDORNEXUS_CONFIG", "")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.Environment = env

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML bytes onto the defaults. Used by Load and tests.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LLMAPIKey = getEnv("LLM_API_KEY", c.LLMAPIKey)
	c.LLMBaseURL = getEnv("LLM_BASE_URL", c.LLMBaseURL)
	c.LLMModel = getEnv("LLM_MODEL", c.LLMModel)
	c.LLMTemperature = getEnvAsFloat32("LLM_TEMPERATURE", c.LLMTemperature)
	c.LLMTimeout = getEnvAsDuration("LLM_TIMEOUT", c.LLMTimeout)
	c.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", c.TelegramBotToken)
	c.TelegramWebhookSecret = getEnv("TELEGRAM_WEBHOOK_SECRET", c.TelegramWebhookSecret)
	c.SessionBackend = getEnv("SESSION_BACKEND", c.SessionBackend)
	c.SessionTTL = getEnvAsDuration("SESSION_TTL", c.SessionTTL)
	c.SessionPurgeSchedule = getEnv("SESSION_PURGE_SCHEDULE", c.SessionPurgeSchedule)
	c.HistoryLimit = getEnvAsInt("HISTORY_LIMIT", c.HistoryLimit)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.VaultBackend = getEnv("VAULT_BACKEND", c.VaultBackend)
	c.VaultBoltPath = getEnv("VAULT_BOLT_PATH", c.VaultBoltPath)
	c.JWTSecretKey = getEnv("JWT_SECRET_KEY", c.JWTSecretKey)
	c.CORSOrigins = getEnvAsList("CORS_ORIGINS", c.CORSOrigins)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
}

// Validate checks enumerations always and required secrets in production.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unknown session backend %q (want memory or sqlite)", c.SessionBackend)
	}
	switch c.VaultBackend {
	case "sqlite", "bolt":
	default:
		return fmt.Errorf("config: unknown vault backend %q (want sqlite or bolt)", c.VaultBackend)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("config: history limit must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session ttl must be positive")
	}

	if isProduction(c.Environment) {
		missing := []string{}
		if c.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if c.TelegramBotToken == "" {
			missing = append(missing, "TELEGRAM_BOT_TOKEN")
		}
		if c.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}
	return nil
}

// IsProduction reports whether ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strValue, 32)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as number. Using default value.", key)
		return defaultValue
	}
	return float32(f)
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated env var, dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
