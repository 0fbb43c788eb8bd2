package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Task field bounds shared by the HTTP layer and the chat agent tool.
const (
	MaxTaskTitleLength       = 500
	MaxTaskDescriptionLength = 5000
)

// TaskRequestValidator validates task create/update requests
type TaskRequestValidator struct{}

// NewTaskRequestValidator creates a new TaskRequestValidator
func NewTaskRequestValidator() *TaskRequestValidator {
	return &TaskRequestValidator{}
}

// ValidateTitle validates a task title
func (v *TaskRequestValidator) ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be empty or whitespace")
	}
	if n := utf8.RuneCountInString(title); n > MaxTaskTitleLength {
		return fmt.Errorf("title cannot exceed %d characters, got %d", MaxTaskTitleLength, n)
	}
	return nil
}

// ValidateDescription validates an optional task description
func (v *TaskRequestValidator) ValidateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n > MaxTaskDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters, got %d", MaxTaskDescriptionLength, n)
	}
	return nil
}

// ValidateCreate validates a complete task creation request
func (v *TaskRequestValidator) ValidateCreate(title, description string) error {
	if err := v.ValidateTitle(title); err != nil {
		return err
	}
	return v.ValidateDescription(description)
}

// ValidateUpdate validates a task update request; nil fields are untouched
func (v *TaskRequestValidator) ValidateUpdate(title, description *string) error {
	if title != nil {
		if err := v.ValidateTitle(*title); err != nil {
			return err
		}
	}
	if description != nil {
		if err := v.ValidateDescription(*description); err != nil {
			return err
		}
	}
	return nil
}
