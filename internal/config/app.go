package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"todo-app/internal/logger"

	"github.com/sirupsen/logrus"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AI       AIConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// AIConfig holds the chat agent provider configuration
type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Provider       string
	SystemPrompt   string
	RequestTimeout time.Duration
}

// Configured reports whether the AI backend has a usable credential.
// The chat endpoint refuses requests before any processing when this is false.
func (c *AIConfig) Configured() bool {
	return c.APIKey != ""
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	// Load Server config
	config.Server = ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		AllowedOrigins: splitOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	// Load Database config
	config.Database = DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "postgres"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "todoapp"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	// Load Auth config
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 7*24*time.Hour),
	}

	// Load AI config
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Log.Warn("OPENAI_API_KEY environment variable not set, chat endpoint will be unavailable")
	}

	config.AI = AIConfig{
		APIKey:         apiKey,
		BaseURL:        getEnvOrDefault("OPENAI_BASE_URL", defaultBaseURL(apiKey)),
		Model:          getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Provider:       getEnvOrDefault("AI_PROVIDER", "openrouter"),
		SystemPrompt:   getEnvOrDefault("AI_SYSTEM_PROMPT", getDefaultSystemPrompt()),
		RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 30*time.Second),
	}

	return config, nil
}

// defaultBaseURL picks the endpoint matching the credential. OpenRouter keys
// carry a recognizable prefix and must be routed to the OpenRouter API.
func defaultBaseURL(apiKey string) string {
	if strings.HasPrefix(apiKey, "sk-or-v1-") {
		return openRouterBaseURL
	}
	return "https://api.openai.com/v1"
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getDefaultSystemPrompt() string {
	return `You help users manage their todo tasks through natural language.

Your capabilities:
- Create tasks from natural language descriptions
- Extract task titles, descriptions, and due dates from user messages
- Handle various date formats (tomorrow, next week, specific dates)
- Provide friendly, concise responses

Guidelines:
- Always confirm task creation with details
- If a date is ambiguous, use your best judgment
- Keep responses brief and friendly
- Focus on task management only

When creating tasks:
1. Extract the task title (main action)
2. Extract any description or details
3. Extract due date if mentioned
4. Call add_task with the extracted information
5. Confirm the task was created`
}
