package board

import (
	"strings"

	"taskboard/internal/model"

	"github.com/google/uuid"
)

// TaskInput carries the raw values of the create-task form.
type TaskInput struct {
	Name        string
	Description string
	DueDate     string
	Priority    string
	ShareWith   string // comma-separated user names
}

// IDGenerator produces task ids. It must not repeat within a session.
type IDGenerator func() string

// NewID is the default IDGenerator.
func NewID() string {
	return uuid.NewString()
}

// NewTask validates input and builds a task in the NotStarted column.
// The due date is not parsed; whatever the caller sent is kept.
func NewTask(input TaskInput, id string) (model.Task, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.DueDate) == "" {
		missing = append(missing, "due_date")
	}
	if len(missing) > 0 {
		return model.Task{}, &ValidationError{Fields: missing}
	}

	return model.Task{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    model.ParsePriority(input.Priority),
		SharedWith:  model.SplitSharedWith(input.ShareWith),
		Category:    model.CategoryNotStarted,
	}, nil
}
