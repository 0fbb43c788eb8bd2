package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"todo-app/internal/auth"
	"todo-app/internal/logger"
	"todo-app/internal/repository/db"
	"todo-app/internal/service/chat"

	"github.com/sirupsen/logrus"
)

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type MessageData struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	ConversationID string        `json:"conversation_id"`
	Message        MessageData   `json:"message"`
	Actions        []chat.Action `json:"actions"`
	Error          *string       `json:"error"`
}

type ConversationInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConversationsResponse struct {
	Conversations []ConversationInfo `json:"conversations"`
}

type MessagesResponse struct {
	Messages []MessageData `json:"messages"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ChatHandler processes one chat message through the agent orchestrator
func (h *Handlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	// Credential check happens before any processing.
	if !h.config.AppConfig.AI.Configured() {
		h.sendError(w, http.StatusServiceUnavailable, "AI service not configured. Please set OPENAI_API_KEY.", nil)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.chatValidator.ValidateMessage(req.Message); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":         userID,
		"conversation_id": req.ConversationID,
	}).Info("Chat request received")

	resp, err := h.chatService.ProcessMessage(r.Context(), chat.ProcessMessageRequest{
		Message:        req.Message,
		ConversationID: req.ConversationID,
		UserID:         userID,
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Conversation not found", nil)
			return
		}
		logger.Log.WithError(err).Error("Error processing chat message")
		h.sendError(w, http.StatusInternalServerError, "Error processing chat message", err)
		return
	}

	var errCode *string
	if resp.ErrorCode != "" {
		errCode = &resp.ErrorCode
	}

	h.sendJSON(w, http.StatusOK, ChatResponse{
		ConversationID: resp.ConversationID,
		Message:        toMessageData(resp.Message),
		Actions:        resp.Actions,
		Error:          errCode,
	})
}

// GetConversationsHandler lists the user's conversations
func (h *Handlers) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	conversations, err := h.conversationService.List(userID)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error retrieving conversations", err)
		return
	}

	infos := make([]ConversationInfo, 0, len(conversations))
	for _, conv := range conversations {
		infos = append(infos, ConversationInfo{
			ID:        conv.ID,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		})
	}

	h.sendJSON(w, http.StatusOK, ConversationsResponse{Conversations: infos})
}

// GetConversationMessagesHandler returns the ordered history of an owned conversation
func (h *Handlers) GetConversationMessagesHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	conversationID := r.PathValue("id")

	messages, err := h.conversationService.Messages(userID, conversationID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Conversation not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error retrieving messages", err)
		return
	}

	data := make([]MessageData, 0, len(messages))
	for i := range messages {
		data = append(data, toMessageData(&messages[i]))
	}

	h.sendJSON(w, http.StatusOK, MessagesResponse{Messages: data})
}

// DeleteConversationHandler removes an owned conversation and its messages
func (h *Handlers) DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	conversationID := r.PathValue("id")

	if err := h.conversationService.Delete(userID, conversationID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Conversation not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error deleting conversation", err)
		return
	}

	h.sendJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "Conversation deleted successfully",
	})
}

func toMessageData(msg *db.Message) MessageData {
	return MessageData{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
