package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/repository/db"
	"todo-app/internal/service/agent"
	"todo-app/internal/service/llm"
	"todo-app/internal/service/task"

	"github.com/sirupsen/logrus"
)

// FallbackMessage is the fixed assistant reply persisted when the completion
// provider fails. It never leaks the underlying error.
const FallbackMessage = "I'm having trouble connecting to my AI service right now. Please try again in a moment, or use the task list above to manage your tasks directly."

// ErrCodeAIUnavailable is the error code returned alongside the fallback reply.
const ErrCodeAIUnavailable = "ai_service_unavailable"

const titleMaxRunes = 50

// ErrConversationNotFound is returned when the referenced conversation does
// not exist for the authenticated user
var ErrConversationNotFound = fmt.Errorf("conversation not found: %w", db.ErrNotFound)

// ProcessMessageRequest contains the parameters for one chat turn
type ProcessMessageRequest struct {
	Message        string
	ConversationID string // empty starts a new conversation
	UserID         string // extracted from auth context, never from the payload
}

// Action summarizes a side effect performed during the turn
type Action struct {
	Type    string  `json:"type"`
	TaskID  *int64  `json:"task_id,omitempty"`
	TaskIDs []int64 `json:"task_ids,omitempty"`
}

// ProcessMessageResponse is the outcome of one chat turn
type ProcessMessageResponse struct {
	ConversationID string
	Message        *db.Message
	Actions        []Action
	ErrorCode      string // empty on the success path
}

// Service orchestrates one chat turn: conversation resolution, message
// persistence, tool registry construction, the completion call, and the
// response. Concurrent turns against the same conversation are not mutually
// excluded; a single writer per conversation is assumed (enforced by the
// calling client).
type Service struct {
	db     db.Database
	tasks  *task.Service
	client llm.AgentClient
	config *config.AIConfig
	now    func() time.Time
}

// NewService creates a new chat Service
func NewService(database db.Database, tasks *task.Service, client llm.AgentClient, aiConfig *config.AIConfig) *Service {
	return &Service{
		db:     database,
		tasks:  tasks,
		client: client,
		config: aiConfig,
		now:    time.Now,
	}
}

// ProcessMessage runs one complete turn. Provider failures degrade to the
// fixed fallback reply; store failures propagate and fail the turn.
func (s *Service) ProcessMessage(ctx context.Context, req ProcessMessageRequest) (*ProcessMessageResponse, error) {
	conversation, err := s.resolveConversation(req)
	if err != nil {
		return nil, err
	}

	// The user message is persisted before the completion call so that the
	// history loaded below already contains it, and so it survives whatever
	// happens to the provider.
	if _, err := s.db.AddMessage(conversation.ID, db.RoleUser, req.Message); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.loadHistory(conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	tools := agent.NewRegistry(s.tasks, req.UserID, s.now)

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversation.ID,
		"user_id":         req.UserID,
		"message_count":   len(history),
	}).Debug("Prepared for agent call")

	callCtx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	result, err := s.client.Complete(callCtx, history, tools)
	if err != nil {
		return s.fallback(conversation, err)
	}

	assistantMessage, err := s.db.AddMessage(conversation.ID, db.RoleAssistant, result.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	if conversation.Title == "" {
		if err := s.db.SetConversationTitleOnce(conversation.ID, deriveTitle(req.Message)); err != nil {
			return nil, fmt.Errorf("failed to set conversation title: %w", err)
		}
	}
	if err := s.db.TouchConversation(conversation.ID); err != nil {
		return nil, fmt.Errorf("failed to update conversation timestamp: %w", err)
	}

	actions := []Action{}
	if result.ToolCalled == agent.ToolAddTask && result.ToolResult != nil {
		taskID := result.ToolResult.ID
		actions = append(actions, Action{Type: "task_created", TaskID: &taskID})
	}

	return &ProcessMessageResponse{
		ConversationID: conversation.ID,
		Message:        assistantMessage,
		Actions:        actions,
	}, nil
}

// resolveConversation looks up an existing conversation scoped to the user,
// or creates a new one when no id was supplied
func (s *Service) resolveConversation(req ProcessMessageRequest) (*db.Conversation, error) {
	if req.ConversationID != "" {
		conversation, err := s.db.GetConversation(req.UserID, req.ConversationID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrConversationNotFound
			}
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		return conversation, nil
	}
	return s.db.CreateConversation(req.UserID)
}

// loadHistory maps the full ordered message history to adapter messages.
// Stored roles are uppercase; the adapter wants lowercase.
func (s *Service) loadHistory(conversationID string) ([]llm.Message, error) {
	messages, err := s.db.GetConversationMessages(conversationID)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for _, msg := range messages {
		history = append(history, llm.Message{
			Role:    strings.ToLower(msg.Role),
			Content: msg.Content,
		})
	}
	return history, nil
}

// fallback handles a failed completion call. The user's message already
// persisted; a fixed assistant reply is stored so no turn is left
// unanswered, and the raw provider error never reaches the caller.
func (s *Service) fallback(conversation *db.Conversation, cause error) (*ProcessMessageResponse, error) {
	logger.Log.WithError(cause).WithField("conversation_id", conversation.ID).Error("Agent call failed, using fallback reply")

	assistantMessage, err := s.db.AddMessage(conversation.ID, db.RoleAssistant, FallbackMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to save fallback message: %w", err)
	}

	return &ProcessMessageResponse{
		ConversationID: conversation.ID,
		Message:        assistantMessage,
		Actions:        []Action{},
		ErrorCode:      ErrCodeAIUnavailable,
	}, nil
}

// deriveTitle builds a conversation title from the first user message,
// truncated to 50 runes with an ellipsis marker
func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxRunes {
		return message
	}
	return string(runes[:titleMaxRunes]) + "..."
}
