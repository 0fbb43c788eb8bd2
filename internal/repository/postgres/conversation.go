package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateConversation creates a new conversation for a user with an unset title
func (p *PostgresDB) CreateConversation(userID string) (*db.Conversation, error) {
	convID := uuid.New().String()
	var createdAt, updatedAt time.Time

	query := `
	INSERT INTO conversations (id, user_id, title)
	VALUES ($1, $2, '')
	RETURNING id, created_at, updated_at
	`

	err := p.conn.QueryRow(query, convID, userID).Scan(&convID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"conversation_id": convID, "user_id": userID}).Info("Created new conversation")

	return &db.Conversation{
		ID:        convID,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetConversation retrieves a conversation scoped to its owner. A
// conversation owned by another user is indistinguishable from a missing one.
func (p *PostgresDB) GetConversation(userID, conversationID string) (*db.Conversation, error) {
	var conv db.Conversation
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM conversations
	WHERE id = $1 AND user_id = $2
	`

	err := p.conn.QueryRow(query, conversationID, userID).
		Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &conv, nil
}

// GetConversationsByUser retrieves all conversations for a user, most
// recently active first
func (p *PostgresDB) GetConversationsByUser(userID string) ([]db.Conversation, error) {
	query := `
	SELECT id, user_id, title, created_at, updated_at
	FROM conversations
	WHERE user_id = $1
	ORDER BY updated_at DESC
	`

	rows, err := p.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []db.Conversation
	for rows.Next() {
		var conv db.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

// DeleteConversation removes an owned conversation; messages cascade
func (p *PostgresDB) DeleteConversation(userID, conversationID string) error {
	result, err := p.conn.Exec(`DELETE FROM conversations WHERE id = $1 AND user_id = $2`, conversationID, userID)
	if err != nil {
		return fmt.Errorf("error deleting conversation: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return db.ErrNotFound
	}

	logger.Log.WithFields(logrus.Fields{"conversation_id": conversationID, "user_id": userID}).Info("Deleted conversation")
	return nil
}

// SetConversationTitleOnce sets the title only if it has never been set.
// The WHERE clause makes the set-at-most-once rule hold even if two turns
// race on the same conversation.
func (p *PostgresDB) SetConversationTitleOnce(conversationID, title string) error {
	query := `
	UPDATE conversations
	SET title = $2, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND title = ''
	`

	if _, err := p.conn.Exec(query, conversationID, title); err != nil {
		return fmt.Errorf("error setting conversation title: %w", err)
	}
	return nil
}

// TouchConversation bumps the conversation's updated_at timestamp
func (p *PostgresDB) TouchConversation(conversationID string) error {
	query := `UPDATE conversations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := p.conn.Exec(query, conversationID); err != nil {
		return fmt.Errorf("error updating conversation timestamp: %w", err)
	}
	return nil
}

// AddMessage appends an immutable message to a conversation
func (p *PostgresDB) AddMessage(conversationID, role, content string) (*db.Message, error) {
	msgID := uuid.New().String()
	var createdAt time.Time

	query := `
	INSERT INTO messages (id, conversation_id, role, content)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`

	err := p.conn.QueryRow(query, msgID, conversationID, role, content).Scan(&msgID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("error adding message: %w", err)
	}

	return &db.Message{
		ID:             msgID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      createdAt,
	}, nil
}

// GetConversationMessages retrieves the full ordered history of a
// conversation, ascending by creation time
func (p *PostgresDB) GetConversationMessages(conversationID string) ([]db.Message, error) {
	query := `
	SELECT id, conversation_id, role, content, created_at
	FROM messages
	WHERE conversation_id = $1
	ORDER BY created_at ASC
	`

	rows, err := p.conn.Query(query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []db.Message
	for rows.Next() {
		var msg db.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
