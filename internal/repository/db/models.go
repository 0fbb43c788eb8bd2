package db

import "time"

// Message roles. Stored uppercase; the LLM layer lowercases them on the wire.
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// User represents a user account in the database
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task represents a todo item owned by exactly one user
type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	IsCompleted bool
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Conversation represents a chat session owned by exactly one user.
// Title is empty until the first completed turn sets it, and is never
// overwritten afterwards.
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message represents a single chat message. Messages are immutable once
// created; creation timestamps define the canonical history order.
type Message struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	CreatedAt      time.Time
}
