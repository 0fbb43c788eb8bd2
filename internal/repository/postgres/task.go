package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/repository/db"

	"github.com/sirupsen/logrus"
)

// CreateTask inserts a task owned by the given user
func (p *PostgresDB) CreateTask(userID, title, description string, dueDate *time.Time) (*db.Task, error) {
	task := db.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}

	query := `
	INSERT INTO tasks (user_id, title, description, due_date)
	VALUES ($1, $2, $3, $4)
	RETURNING id, is_completed, created_at, updated_at
	`

	err := p.conn.QueryRow(query, userID, title, nullableString(description), dueDate).
		Scan(&task.ID, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"task_id": task.ID, "user_id": userID}).Info("Created new task")

	return &task, nil
}

// GetTasksByUser retrieves all tasks for a user, newest first
func (p *PostgresDB) GetTasksByUser(userID string) ([]db.Task, error) {
	query := `
	SELECT id, user_id, title, COALESCE(description, ''), is_completed, due_date, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := p.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []db.Task
	for rows.Next() {
		var task db.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.IsCompleted, &task.DueDate, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTask retrieves a single task, enforcing ownership
func (p *PostgresDB) GetTask(userID string, taskID int64) (*db.Task, error) {
	var task db.Task
	query := `
	SELECT id, user_id, title, COALESCE(description, ''), is_completed, due_date, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`

	err := p.conn.QueryRow(query, taskID, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.IsCompleted, &task.DueDate, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving task: %w", err)
	}

	return &task, nil
}

// UpdateTask updates title and/or description of an owned task.
// Nil fields are left unchanged.
func (p *PostgresDB) UpdateTask(userID string, taskID int64, title, description *string) (*db.Task, error) {
	query := `
	UPDATE tasks
	SET title = COALESCE($3, title),
	    description = COALESCE($4, description),
	    updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND user_id = $2
	`

	result, err := p.conn.Exec(query, taskID, userID, title, description)
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, db.ErrNotFound
	}

	return p.GetTask(userID, taskID)
}

// SetTaskCompletion sets the completion flag of an owned task
func (p *PostgresDB) SetTaskCompletion(userID string, taskID int64, completed bool) (*db.Task, error) {
	query := `
	UPDATE tasks
	SET is_completed = $3, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND user_id = $2
	`

	result, err := p.conn.Exec(query, taskID, userID, completed)
	if err != nil {
		return nil, fmt.Errorf("error updating task completion: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, db.ErrNotFound
	}

	return p.GetTask(userID, taskID)
}

// DeleteTask removes an owned task
func (p *PostgresDB) DeleteTask(userID string, taskID int64) error {
	result, err := p.conn.Exec(`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return db.ErrNotFound
	}

	logger.Log.WithFields(logrus.Fields{"task_id": taskID, "user_id": userID}).Info("Deleted task")
	return nil
}

// nullableString maps an empty string to NULL so optional text columns
// stay NULL instead of storing empty strings.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
