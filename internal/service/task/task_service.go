package task

import (
	"fmt"
	"strings"
	"time"

	"todo-app/internal/repository/db"
)

// Service handles the business logic for task operations. Every method is
// scoped by the owning user's id; the id always comes from the authenticated
// session, never from request payloads.
type Service struct {
	db db.Database
}

// NewService creates a new task Service
func NewService(database db.Database) *Service {
	return &Service{db: database}
}

// Create creates a task for the user. The title is stored trimmed.
func (s *Service) Create(userID, title, description string, dueDate *time.Time) (*db.Task, error) {
	task, err := s.db.CreateTask(userID, strings.TrimSpace(title), description, dueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List returns all of the user's tasks, newest first
func (s *Service) List(userID string) ([]db.Task, error) {
	tasks, err := s.db.GetTasksByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single owned task
func (s *Service) Get(userID string, taskID int64) (*db.Task, error) {
	return s.db.GetTask(userID, taskID)
}

// Update changes title and/or description of an owned task
func (s *Service) Update(userID string, taskID int64, title, description *string) (*db.Task, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		title = &trimmed
	}
	return s.db.UpdateTask(userID, taskID, title, description)
}

// SetCompletion sets the completion flag of an owned task
func (s *Service) SetCompletion(userID string, taskID int64, completed bool) (*db.Task, error) {
	return s.db.SetTaskCompletion(userID, taskID, completed)
}

// Delete removes an owned task
func (s *Service) Delete(userID string, taskID int64) error {
	return s.db.DeleteTask(userID, taskID)
}
