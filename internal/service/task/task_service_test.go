package task

import (
	"errors"
	"testing"
	"time"

	"todo-app/internal/repository/db"
	"todo-app/internal/testutil"
)

func TestCreate_TrimsTitle(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	var storedTitle string
	mockDB.CreateTaskFunc = func(userID, title, description string, dueDate *time.Time) (*db.Task, error) {
		storedTitle = title
		return &db.Task{ID: 1, UserID: userID, Title: title, Description: description}, nil
	}

	created, err := service.Create("user-456", "  Buy milk  ", "2 liters", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if storedTitle != "Buy milk" {
		t.Errorf("Expected trimmed title 'Buy milk', got '%s'", storedTitle)
	}
	if created.ID != 1 {
		t.Errorf("Expected task ID 1, got %d", created.ID)
	}
}

func TestCreate_StoreError(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.CreateTaskFunc = func(userID, title, description string, dueDate *time.Time) (*db.Task, error) {
		return nil, errors.New("database error")
	}

	_, err := service.Create("user-456", "Buy milk", "", nil)
	if err == nil {
		t.Fatal("Expected an error, got nil")
	}
}

func TestList(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.GetTasksByUserFunc = func(userID string) ([]db.Task, error) {
		if userID != "user-456" {
			t.Errorf("Expected listing for 'user-456', got '%s'", userID)
		}
		return []db.Task{{ID: 2, Title: "Newer"}, {ID: 1, Title: "Older"}}, nil
	}

	tasks, err := service.List("user-456")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}
}

func TestGet_NotFound(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.GetTaskFunc = func(userID string, taskID int64) (*db.Task, error) {
		return nil, db.ErrNotFound
	}

	_, err := service.Get("user-456", 99)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestUpdate_TrimsTitle(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	var gotTitle *string
	mockDB.UpdateTaskFunc = func(userID string, taskID int64, title, description *string) (*db.Task, error) {
		gotTitle = title
		return &db.Task{ID: taskID, UserID: userID, Title: *title}, nil
	}

	title := "  New title  "
	_, err := service.Update("user-456", 1, &title, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotTitle == nil || *gotTitle != "New title" {
		t.Errorf("Expected trimmed title 'New title', got %v", gotTitle)
	}
}

func TestUpdate_NilFieldsPassThrough(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.UpdateTaskFunc = func(userID string, taskID int64, title, description *string) (*db.Task, error) {
		if title != nil || description != nil {
			t.Errorf("Expected nil fields to stay nil, got title=%v description=%v", title, description)
		}
		return &db.Task{ID: taskID, UserID: userID}, nil
	}

	if _, err := service.Update("user-456", 1, nil, nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestSetCompletion(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.SetTaskCompletionFunc = func(userID string, taskID int64, completed bool) (*db.Task, error) {
		return &db.Task{ID: taskID, UserID: userID, IsCompleted: completed}, nil
	}

	updated, err := service.SetCompletion("user-456", 1, true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !updated.IsCompleted {
		t.Error("Expected the task to be marked completed")
	}
}

func TestDelete_NotFound(t *testing.T) {
	mockDB := &testutil.MockDatabase{}
	service := NewService(mockDB)

	mockDB.DeleteTaskFunc = func(userID string, taskID int64) error {
		return db.ErrNotFound
	}

	err := service.Delete("user-456", 99)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}
