package validation

import (
	"strings"
	"testing"
)

func TestTaskRequestValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskRequestValidator()

	tests := []struct {
		name    string
		title   string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid title",
			title:   "Buy milk",
			wantErr: false,
		},
		{
			name:    "title at maximum length",
			title:   strings.Repeat("a", MaxTaskTitleLength),
			wantErr: false,
		},
		{
			name:    "multibyte title at maximum length",
			title:   strings.Repeat("字", MaxTaskTitleLength),
			wantErr: false,
		},
		{
			name:    "multibyte title over maximum length",
			title:   strings.Repeat("字", MaxTaskTitleLength+1),
			wantErr: true,
			errMsg:  "title cannot exceed 500 characters",
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: true,
			errMsg:  "title cannot be empty or whitespace",
		},
		{
			name:    "whitespace only title",
			title:   "   \t  ",
			wantErr: true,
			errMsg:  "title cannot be empty or whitespace",
		},
		{
			name:    "title too long",
			title:   strings.Repeat("a", MaxTaskTitleLength+1),
			wantErr: true,
			errMsg:  "title cannot exceed 500 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateTitle() error message = %v, want to contain %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestTaskRequestValidator_ValidateDescription(t *testing.T) {
	validator := NewTaskRequestValidator()

	tests := []struct {
		name        string
		description string
		wantErr     bool
		errMsg      string
	}{
		{
			name:        "valid description",
			description: "Get 2 liters of whole milk",
			wantErr:     false,
		},
		{
			name:        "empty description",
			description: "",
			wantErr:     false,
		},
		{
			name:        "description at maximum length",
			description: strings.Repeat("a", MaxTaskDescriptionLength),
			wantErr:     false,
		},
		{
			name:        "multibyte description at maximum length",
			description: strings.Repeat("ä", MaxTaskDescriptionLength),
			wantErr:     false,
		},
		{
			name:        "description too long",
			description: strings.Repeat("a", MaxTaskDescriptionLength+1),
			wantErr:     true,
			errMsg:      "description cannot exceed 5000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateDescription(tt.description)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDescription() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateDescription() error message = %v, want to contain %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}

func TestTaskRequestValidator_ValidateUpdate(t *testing.T) {
	validator := NewTaskRequestValidator()

	validTitle := "New title"
	emptyTitle := "  "
	longDescription := strings.Repeat("a", MaxTaskDescriptionLength+1)

	tests := []struct {
		name        string
		title       *string
		description *string
		wantErr     bool
	}{
		{
			name:        "both nil is a no-op update",
			title:       nil,
			description: nil,
			wantErr:     false,
		},
		{
			name:        "valid title only",
			title:       &validTitle,
			description: nil,
			wantErr:     false,
		},
		{
			name:        "whitespace title rejected",
			title:       &emptyTitle,
			description: nil,
			wantErr:     true,
		},
		{
			name:        "over-long description rejected",
			title:       nil,
			description: &longDescription,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateUpdate(tt.title, tt.description)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
