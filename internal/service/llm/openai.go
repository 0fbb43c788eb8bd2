package llm

import (
	"context"
	"fmt"

	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/service/agent"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// OpenAIClient implements AgentClient using the official OpenAI SDK. With a
// custom base URL it also speaks to any OpenAI-compatible endpoint.
type OpenAIClient struct {
	client openai.Client
	config *config.AIConfig
}

// NewOpenAIClient creates a new OpenAI SDK client with config
func NewOpenAIClient(aiConfig *config.AIConfig) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(aiConfig.APIKey),
		option.WithBaseURL(aiConfig.BaseURL),
	)
	return &OpenAIClient{
		client: client,
		config: aiConfig,
	}
}

// translateToolParams converts tool specs into SDK tool definitions
func translateToolParams(tools *agent.Registry) []openai.ChatCompletionToolParam {
	if tools == nil || tools.Empty() {
		return nil
	}
	specs := tools.Specs()
	params := make([]openai.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openai.String(spec.Description),
				Parameters:  openai.FunctionParameters(spec.Parameters),
			},
		})
	}
	return params
}

// Complete issues one synchronous completion request with tool calling
// enabled and interprets the result
func (c *OpenAIClient) Complete(ctx context.Context, history []Message, tools *agent.Registry) (*Result, error) {
	if c.config.APIKey == "" {
		return nil, &ServiceError{Provider: "openai", Err: fmt.Errorf("API key not configured")}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(c.config.SystemPrompt))
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.config.Model),
		Messages: messages,
		Tools:    translateToolParams(tools),
	}

	logger.Log.WithFields(logrus.Fields{
		"model":         c.config.Model,
		"message_count": len(history),
		"tool_count":    len(params.Tools),
	}).Info("Calling OpenAI chat completion API")

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &ServiceError{Provider: "openai", Err: err}
	}

	if len(completion.Choices) == 0 {
		return nil, &ServiceError{Provider: "openai", Err: fmt.Errorf("no response from API")}
	}

	message := completion.Choices[0].Message

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
