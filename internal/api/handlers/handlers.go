package handlers

import (
	"encoding/json"
	"net/http"

	"todo-app/internal/app"
	"todo-app/internal/service/chat"
	"todo-app/internal/service/conversation"
	"todo-app/internal/service/llm"
	"todo-app/internal/service/task"
	"todo-app/pkg/validation"
)

// ErrorResponse is the standardized JSON error body
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handlers wires the HTTP surface to the service layer
type Handlers struct {
	config              *app.Config
	chatValidator       *validation.ChatRequestValidator
	taskValidator       *validation.TaskRequestValidator
	chatService         *chat.Service
	taskService         *task.Service
	conversationService *conversation.Service
}

// NewHandlers creates the handler set with the service layer
func NewHandlers(config *app.Config) (*Handlers, error) {
	client, err := llm.NewAgentClient(&config.AppConfig.AI)
	if err != nil {
		return nil, err
	}

	taskService := task.NewService(config.DB)

	return &Handlers{
		config:              config,
		chatValidator:       validation.NewChatRequestValidator(),
		taskValidator:       validation.NewTaskRequestValidator(),
		chatService:         chat.NewService(config.DB, taskService, client, &config.AppConfig.AI),
		taskService:         taskService,
		conversationService: conversation.NewService(config.DB),
	}, nil
}

// sendError sends a standardized JSON error response
func (h *Handlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		errResp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}

// sendJSON sends a JSON response with the given status
func (h *Handlers) sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
