package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

var ErrInvalidEnvironmentVariable = errors.New("invalid environment variable")

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Services   ServicesConfig
	VoiceAgent VoiceAgentConfig
	Redis      RedisConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds session-cookie authentication settings
type AuthConfig struct {
	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool
}

// AI providers accepted by AI_PROVIDER
const (
	AIProviderGemini = "gemini"
	AIProviderOpenAI = "openai"
)

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	AIProvider         string
	AIModel            string
	GoogleAIAPIKey     string
	OpenAIAPIKey       string
	ResendAPIKey       string
	DefaultEmailSender string
	WebAppURI          string
	PublicBaseURL      string
	FeedbackEnabled    bool
}

// VoiceAgentConfig holds the hosted voice-agent platform connection settings
type VoiceAgentConfig struct {
	URL    string
	APIKey string
	// WebhookSecret is the shared secret the generator workflow sends back to the generate webhook
	WebhookSecret string
}

// RedisConfig holds Redis settings used by the generation rate limiter
type RedisConfig struct {
	Enabled              bool
	Host                 string
	Port                 int
	Password             string
	DB                   int
	GenerateLimitPerHour int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// IsProduction reports whether GO_ENV is production
func IsProduction() bool {
	return os.Getenv("GO_ENV") == "production"
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if !IsProduction() {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	ttlHours, err := getIntWithDefault("SESSION_TTL_HOURS", 24*7)
	if err != nil {
		return nil, err
	}
	cfg.Auth.SessionTTL = time.Duration(ttlHours) * time.Hour
	cfg.Auth.SecureCookie = IsProduction()

	// Services configuration
	if cfg.Services.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}
	if cfg.Services.PublicBaseURL, err = requireEnv("PUBLIC_BASE_URL"); err != nil {
		return nil, err
	}
	cfg.Services.PublicBaseURL = strings.TrimRight(cfg.Services.PublicBaseURL, "/")

	cfg.Services.AIProvider = strings.ToLower(getEnvWithDefault("AI_PROVIDER", AIProviderGemini))
	cfg.Services.AIModel = os.Getenv("AI_MODEL")
	switch cfg.Services.AIProvider {
	case AIProviderGemini:
		if cfg.Services.GoogleAIAPIKey, err = requireEnv("GOOGLE_AI_API_KEY"); err != nil {
			return nil, err
		}
	case AIProviderOpenAI:
		if cfg.Services.OpenAIAPIKey, err = requireEnv("OPENAI_API_KEY"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("AI_PROVIDER %q: %w", cfg.Services.AIProvider, ErrInvalidEnvironmentVariable)
	}

	cfg.Services.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Services.DefaultEmailSender = os.Getenv("DEFAULT_EMAIL_SENDER_ADDRESS")
	if cfg.Services.FeedbackEnabled, err = getBoolWithDefault("FEEDBACK_ENABLED", true); err != nil {
		return nil, err
	}

	// Voice agent platform
	if cfg.VoiceAgent.URL, err = requireEnv("VOICE_AGENT_URL"); err != nil {
		return nil, err
	}
	if cfg.VoiceAgent.APIKey, err = requireEnv("VOICE_AGENT_API_KEY"); err != nil {
		return nil, err
	}
	cfg.VoiceAgent.WebhookSecret = getEnvWithDefault("VOICE_AGENT_WEBHOOK_SECRET", cfg.VoiceAgent.APIKey)

	// Redis configuration
	if cfg.Redis.Enabled, err = getBoolWithDefault("REDIS_ENABLED", false); err != nil {
		return nil, err
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = getIntWithDefault("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.GenerateLimitPerHour, err = getIntWithDefault("GENERATE_RATE_LIMIT_PER_HOUR", 10); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
