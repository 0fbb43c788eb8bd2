package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"todo-app/internal/auth"
	"todo-app/internal/repository/db"

	"github.com/google/uuid"
)

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type TaskCompleteRequest struct {
	IsCompleted bool `json:"is_completed"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// resolveTaskPath validates the path-embedded user id against the
// authenticated identity. The path value is only ever compared, never
// trusted as the acting user.
func (h *Handlers) resolveTaskPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := auth.UserID(r.Context())
	pathUserID := r.PathValue("user_id")

	if pathUserID != userID {
		h.sendError(w, http.StatusForbidden, "Access forbidden - user_id does not match authenticated user", nil)
		return "", false
	}
	if _, err := uuid.Parse(pathUserID); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid user_id format", nil)
		return "", false
	}

	return userID, true
}

func (h *Handlers) taskIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	taskID, err := strconv.ParseInt(r.PathValue("task_id"), 10, 64)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid task_id format", nil)
		return 0, false
	}
	return taskID, true
}

// ListTasksHandler returns the user's tasks, newest first
func (h *Handlers) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(userID)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error retrieving tasks", err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toTaskResponse(&tasks[i]))
	}

	h.sendJSON(w, http.StatusOK, responses)
}

// CreateTaskHandler creates a task owned by the authenticated user
func (h *Handlers) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}

	var req TaskCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.taskValidator.ValidateCreate(req.Title, req.Description); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	created, err := h.taskService.Create(userID, req.Title, req.Description, nil)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "Error creating task", err)
		return
	}

	h.sendJSON(w, http.StatusCreated, toTaskResponse(created))
}

// GetTaskHandler returns a single owned task
func (h *Handlers) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(userID, taskID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error retrieving task", err)
		return
	}

	h.sendJSON(w, http.StatusOK, toTaskResponse(task))
}

// UpdateTaskHandler updates title and/or description of an owned task
func (h *Handlers) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.taskValidator.ValidateUpdate(req.Title, req.Description); err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	updated, err := h.taskService.Update(userID, taskID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error updating task", err)
		return
	}

	h.sendJSON(w, http.StatusOK, toTaskResponse(updated))
}

// CompleteTaskHandler sets the completion flag of an owned task
func (h *Handlers) CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req TaskCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.taskService.SetCompletion(userID, taskID, req.IsCompleted)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error updating task", err)
		return
	}

	h.sendJSON(w, http.StatusOK, toTaskResponse(updated))
}

// DeleteTaskHandler permanently removes an owned task
func (h *Handlers) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveTaskPath(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		h.sendError(w, http.StatusInternalServerError, "Error deleting task", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTaskResponse(task *db.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		IsCompleted: task.IsCompleted,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Description != "" {
		description := task.Description
		resp.Description = &description
	}
	return resp
}
