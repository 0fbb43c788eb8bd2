package llm

import (
	"fmt"

	"todo-app/internal/config"
	"todo-app/internal/logger"
)

// ProviderType represents the type of completion provider
type ProviderType string

const (
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOpenAI     ProviderType = "openai"
)

// ParseProviderType parses a string into a ProviderType
func ParseProviderType(s string) (ProviderType, error) {
	switch s {
	case "openrouter", "":
		return ProviderOpenRouter, nil
	case "openai":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown provider type: %s", s)
	}
}

// NewAgentClient creates the configured completion provider
func NewAgentClient(aiConfig *config.AIConfig) (AgentClient, error) {
	providerType, err := ParseProviderType(aiConfig.Provider)
	if err != nil {
		return nil, err
	}

	switch providerType {
	case ProviderOpenRouter:
		logger.Log.Info("Creating OpenRouter agent client")
		return NewOpenRouterClient(aiConfig), nil
	case ProviderOpenAI:
		logger.Log.Info("Creating OpenAI agent client")
		return NewOpenAIClient(aiConfig), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
