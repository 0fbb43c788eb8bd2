package conversation

import (
	"fmt"

	"todo-app/internal/repository/db"
)

// Service handles listing and deleting conversations and reading their
// message history. Every operation is scoped to the owning user.
type Service struct {
	db db.Database
}

// NewService creates a new conversation Service
func NewService(database db.Database) *Service {
	return &Service{db: database}
}

// List returns the user's conversations, most recently active first
func (s *Service) List(userID string) ([]db.Conversation, error) {
	conversations, err := s.db.GetConversationsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// Messages returns the full ordered history of an owned conversation
func (s *Service) Messages(userID, conversationID string) ([]db.Message, error) {
	// Ownership check first; the messages table itself is not user-scoped.
	if _, err := s.db.GetConversation(userID, conversationID); err != nil {
		return nil, err
	}
	return s.db.GetConversationMessages(conversationID)
}

// Delete removes an owned conversation and its messages
func (s *Service) Delete(userID, conversationID string) error {
	return s.db.DeleteConversation(userID, conversationID)
}
