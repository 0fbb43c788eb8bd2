package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/service/task"
	"todo-app/pkg/validation"

	"github.com/sirupsen/logrus"
)

// ToolAddTask is the function name advertised to the model.
const ToolAddTask = "add_task"

// ToolSpec describes one tool to the completion provider
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// TaskRecord is the structured result of a successful add_task call
type TaskRecord struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Tool pairs a spec with its handler. The handler decodes its own typed
// argument payload; there is no shared reflective dispatch.
type Tool struct {
	Spec ToolSpec
	Run  func(args json.RawMessage) (*TaskRecord, error)
}

// Registry holds the tools available for one turn, each bound to a single
// user's identity. The user id is fixed at construction, before the model
// sees anything, so no tool can act outside that user's scope regardless of
// what arguments the model supplies.
type Registry struct {
	tools map[string]*Tool
	order []*Tool
}

// NewRegistry builds the tool set for one authenticated user. now supplies
// the reference time for due-date resolution.
func NewRegistry(tasks *task.Service, userID string, now func() time.Time) *Registry {
	r := &Registry{tools: make(map[string]*Tool)}
	r.add(newAddTaskTool(tasks, userID, now))
	return r
}

func (r *Registry) add(t *Tool) {
	r.tools[t.Spec.Name] = t
	r.order = append(r.order, t)
}

// Specs returns the tool specs in registration order
func (r *Registry) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.order))
	for _, t := range r.order {
		specs = append(specs, t.Spec)
	}
	return specs
}

// Lookup resolves a tool by name
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Empty reports whether the registry advertises no tools
func (r *Registry) Empty() bool {
	return len(r.order) == 0
}

type addTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func newAddTaskTool(tasks *task.Service, userID string, now func() time.Time) *Tool {
	validator := validation.NewTaskRequestValidator()

	return &Tool{
		Spec: ToolSpec{
			Name:        ToolAddTask,
			Description: "Create a new task for the user",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Task title (required)",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Task description (optional)",
					},
					"due_date": map[string]any{
						"type":        "string",
						"description": "Due date in natural language or ISO format (optional)",
					},
				},
				"required": []string{"title"},
			},
		},
		Run: func(raw json.RawMessage) (*TaskRecord, error) {
			var args addTaskArgs
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w: malformed tool arguments: %v", ErrInvalidArgument, err)
			}

			if strings.TrimSpace(args.Title) == "" {
				return nil, fmt.Errorf("%w: task title cannot be empty", ErrInvalidArgument)
			}
			if err := validator.ValidateCreate(args.Title, args.Description); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}

			var dueDate *time.Time
			if args.DueDate != "" {
				parsed, err := ParseDueDate(args.DueDate, now())
				if err != nil {
					return nil, err
				}
				dueDate = &parsed
			}

			created, err := tasks.Create(userID, args.Title, strings.TrimSpace(args.Description), dueDate)
			if err != nil {
				return nil, err
			}

			logger.Log.WithFields(logrus.Fields{"task_id": created.ID, "user_id": userID}).Info("Task created via chat agent")

			return &TaskRecord{
				ID:          created.ID,
				Title:       created.Title,
				Description: created.Description,
				IsCompleted: created.IsCompleted,
				CreatedAt:   created.CreatedAt,
				DueDate:     created.DueDate,
			}, nil
		},
	}
}
