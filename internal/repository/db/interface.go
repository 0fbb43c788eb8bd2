package db

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a row does not exist or is owned by a
// different user. Callers must not be able to distinguish the two cases.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered
var ErrDuplicateEmail = errors.New("email already registered")

// Database defines the interface for all database operations
// This allows for easier testing through mocking and decouples the services from the specific database implementation
type Database interface {
	// Users
	CreateUser(name, email, passwordHash string) (*User, error)
	GetUserByEmail(email string) (*User, error)

	// Tasks (every operation is scoped by the owning user)
	CreateTask(userID, title, description string, dueDate *time.Time) (*Task, error)
	GetTasksByUser(userID string) ([]Task, error)
	GetTask(userID string, taskID int64) (*Task, error)
	UpdateTask(userID string, taskID int64, title, description *string) (*Task, error)
	SetTaskCompletion(userID string, taskID int64, completed bool) (*Task, error)
	DeleteTask(userID string, taskID int64) error

	// Conversations
	CreateConversation(userID string) (*Conversation, error)
	GetConversation(userID, conversationID string) (*Conversation, error)
	GetConversationsByUser(userID string) ([]Conversation, error)
	DeleteConversation(userID, conversationID string) error
	SetConversationTitleOnce(conversationID, title string) error
	TouchConversation(conversationID string) error

	// Messages
	AddMessage(conversationID, role, content string) (*Message, error)
	GetConversationMessages(conversationID string) ([]Message, error)
}
