package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/service/agent"

	"github.com/sirupsen/logrus"
)

// OpenRouterClient implements AgentClient with direct chat-completion API
// calls against an OpenAI-compatible endpoint.
type OpenRouterClient struct {
	config     *config.AIConfig
	httpClient *http.Client
}

// NewOpenRouterClient creates a new OpenRouter client with config
func NewOpenRouterClient(aiConfig *config.AIConfig) *OpenRouterClient {
	return &OpenRouterClient{
		config:     aiConfig,
		httpClient: &http.Client{},
	}
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type toolDefinition struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type chatRequest struct {
	Model      string           `json:"model"`
	Messages   []Message        `json:"messages"`
	Stream     bool             `json:"stream"`
	Tools      []toolDefinition `json:"tools,omitempty"`
	ToolChoice string           `json:"tool_choice,omitempty"`
}

type toolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role      string     `json:"role"`
			Content   string     `json:"content"`
			ToolCalls []toolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// translateTools converts tool specs into the provider's function-schema format
func translateTools(tools *agent.Registry) []toolDefinition {
	if tools == nil || tools.Empty() {
		return nil
	}
	specs := tools.Specs()
	defs := make([]toolDefinition, 0, len(specs))
	for _, spec := range specs {
		defs = append(defs, toolDefinition{
			Type: "function",
			Function: toolFunction{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return defs
}

// buildMessagesWithHistory prepends the system prompt to the history
func (c *OpenRouterClient) buildMessagesWithHistory(history []Message) []Message {
	return append([]Message{{Role: "system", Content: c.config.SystemPrompt}}, history...)
}

// Complete issues one synchronous completion request with tool calling
// enabled and interprets the result
func (c *OpenRouterClient) Complete(ctx context.Context, history []Message, tools *agent.Registry) (*Result, error) {
	if c.config.APIKey == "" {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("API key not configured")}
	}

	defs := translateTools(tools)
	reqBody := chatRequest{
		Model:    c.config.Model,
		Messages: c.buildMessagesWithHistory(history),
		Stream:   false,
		Tools:    defs,
	}
	if len(defs) > 0 {
		reqBody.ToolChoice = "auto"
	}

	logger.Log.WithFields(logrus.Fields{
		"model":         reqBody.Model,
		"message_count": len(history),
		"tool_count":    len(defs),
	}).Info("Calling chat completion API")

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("error marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("error creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("error sending request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("error reading response body: %w", err)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("error decoding response: %w", err)}
	}

	if len(chatResp.Choices) == 0 {
		return nil, &ServiceError{Provider: "openrouter", Err: fmt.Errorf("no response from API")}
	}

	message := chatResp.Choices[0].Message

	// Multi-call turns are not supported: only the first tool call runs.
	if len(message.ToolCalls) > 0 {
		call := message.ToolCalls[0]
		return runToolCall(tools, call.Function.Name, call.Function.Arguments), nil
	}

	content := message.Content
	if content == "" {
		content = defaultReply
	}

	return &Result{Content: content}, nil
}
