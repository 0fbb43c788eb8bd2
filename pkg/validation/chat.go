package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxChatMessageLength bounds a single inbound chat message.
const MaxChatMessageLength = 2000

// ChatRequestValidator validates chat-related requests
type ChatRequestValidator struct{}

// NewChatRequestValidator creates a new ChatRequestValidator
func NewChatRequestValidator() *ChatRequestValidator {
	return &ChatRequestValidator{}
}

// ValidateMessage validates a chat message
func (v *ChatRequestValidator) ValidateMessage(message string) error {
	if message == "" {
		return errors.New("message cannot be empty")
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return fmt.Errorf("message cannot exceed %d characters", MaxChatMessageLength)
	}
	return nil
}
