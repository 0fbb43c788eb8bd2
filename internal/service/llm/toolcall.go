package llm

import (
	"encoding/json"
	"fmt"

	"todo-app/internal/logger"
	"todo-app/internal/service/agent"

	"github.com/sirupsen/logrus"
)

// defaultReply is used when the model returns neither a tool call nor text.
const defaultReply = "I'm not sure how to help with that."

// runToolCall resolves and executes one model-requested tool call. All
// failures here are tool-level: they become part of a normal Result, never
// an error return. Arguments are decoded strictly as JSON into the tool's
// typed schema; they are never evaluated any other way.
func runToolCall(tools *agent.Registry, name, arguments string) *Result {
	tool, ok := tools.Lookup(name)
	if !ok {
		logger.Log.WithField("tool", name).Warn("Model requested an unknown tool")
		return &Result{
			Content:   fmt.Sprintf("I tried to use an action (%s) that isn't available.", name),
			ToolError: fmt.Sprintf("unknown tool %q", name),
		}
	}

	record, err := tool.Run(json.RawMessage(arguments))
	if err != nil {
		logger.Log.WithError(err).WithField("tool", name).Warn("Tool execution failed")
		return &Result{
			Content:   fmt.Sprintf("I encountered an error creating the task: %v", err),
			ToolError: err.Error(),
		}
	}

	logger.Log.WithFields(logrus.Fields{"tool": name, "task_id": record.ID}).Debug("Tool executed")

	return &Result{
		Content:    fmt.Sprintf("I've created a task: '%s'", record.Title),
		ToolCalled: name,
		ToolResult: record,
	}
}
