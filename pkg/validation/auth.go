package validation

import (
	"errors"
	"fmt"
	"strings"
)

// AuthRequestValidator validates signup and login requests
type AuthRequestValidator struct{}

// NewAuthRequestValidator creates a new AuthRequestValidator
func NewAuthRequestValidator() *AuthRequestValidator {
	return &AuthRequestValidator{}
}

// ValidateName validates a user's display name
func (v *AuthRequestValidator) ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("name cannot exceed 255 characters, got %d", len(name))
	}
	return nil
}

// ValidateEmail performs a minimal shape check on an email address
func (v *AuthRequestValidator) ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email cannot be empty")
	}
	if len(email) > 255 {
		return fmt.Errorf("email cannot exceed 255 characters, got %d", len(email))
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// ValidatePassword validates password length bounds
func (v *AuthRequestValidator) ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 100 {
		return errors.New("password cannot exceed 100 characters")
	}
	return nil
}

// ValidateSignup validates a complete signup request
func (v *AuthRequestValidator) ValidateSignup(name, email, password string) error {
	if err := v.ValidateName(name); err != nil {
		return err
	}
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	return v.ValidatePassword(password)
}
