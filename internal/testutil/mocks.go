package testutil

import (
	"errors"
	"time"

	"todo-app/internal/repository/db"
)

// MockDatabase is a mock implementation of db.Database for testing
type MockDatabase struct {
	// User mocks
	CreateUserFunc     func(name, email, passwordHash string) (*db.User, error)
	GetUserByEmailFunc func(email string) (*db.User, error)

	// Task mocks
	CreateTaskFunc        func(userID, title, description string, dueDate *time.Time) (*db.Task, error)
	GetTasksByUserFunc    func(userID string) ([]db.Task, error)
	GetTaskFunc           func(userID string, taskID int64) (*db.Task, error)
	UpdateTaskFunc        func(userID string, taskID int64, title, description *string) (*db.Task, error)
	SetTaskCompletionFunc func(userID string, taskID int64, completed bool) (*db.Task, error)
	DeleteTaskFunc        func(userID string, taskID int64) error

	// Conversation mocks
	CreateConversationFunc       func(userID string) (*db.Conversation, error)
	GetConversationFunc          func(userID, conversationID string) (*db.Conversation, error)
	GetConversationsByUserFunc   func(userID string) ([]db.Conversation, error)
	DeleteConversationFunc       func(userID, conversationID string) error
	SetConversationTitleOnceFunc func(conversationID, title string) error
	TouchConversationFunc        func(conversationID string) error

	// Message mocks
	AddMessageFunc              func(conversationID, role, content string) (*db.Message, error)
	GetConversationMessagesFunc func(conversationID string) ([]db.Message, error)
}

// User methods
func (m *MockDatabase) CreateUser(name, email, passwordHash string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(name, email, passwordHash)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetUserByEmail(email string) (*db.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, errors.New("not implemented")
}

// Task methods
func (m *MockDatabase) CreateTask(userID, title, description string, dueDate *time.Time) (*db.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(userID, title, description, dueDate)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetTasksByUser(userID string) ([]db.Task, error) {
	if m.GetTasksByUserFunc != nil {
		return m.GetTasksByUserFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetTask(userID string, taskID int64) (*db.Task, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(userID, taskID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) UpdateTask(userID string, taskID int64, title, description *string) (*db.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(userID, taskID, title, description)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) SetTaskCompletion(userID string, taskID int64, completed bool) (*db.Task, error) {
	if m.SetTaskCompletionFunc != nil {
		return m.SetTaskCompletionFunc(userID, taskID, completed)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) DeleteTask(userID string, taskID int64) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(userID, taskID)
	}
	return errors.New("not implemented")
}

// Conversation methods
func (m *MockDatabase) CreateConversation(userID string) (*db.Conversation, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetConversation(userID, conversationID string) (*db.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(userID, conversationID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetConversationsByUser(userID string) ([]db.Conversation, error) {
	if m.GetConversationsByUserFunc != nil {
		return m.GetConversationsByUserFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) DeleteConversation(userID, conversationID string) error {
	if m.DeleteConversationFunc != nil {
		return m.DeleteConversationFunc(userID, conversationID)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) SetConversationTitleOnce(conversationID, title string) error {
	if m.SetConversationTitleOnceFunc != nil {
		return m.SetConversationTitleOnceFunc(conversationID, title)
	}
	return errors.New("not implemented")
}

func (m *MockDatabase) TouchConversation(conversationID string) error {
	if m.TouchConversationFunc != nil {
		return m.TouchConversationFunc(conversationID)
	}
	return errors.New("not implemented")
}

// Message methods
func (m *MockDatabase) AddMessage(conversationID, role, content string) (*db.Message, error) {
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(conversationID, role, content)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDatabase) GetConversationMessages(conversationID string) ([]db.Message, error) {
	if m.GetConversationMessagesFunc != nil {
		return m.GetConversationMessagesFunc(conversationID)
	}
	return nil, errors.New("not implemented")
}
