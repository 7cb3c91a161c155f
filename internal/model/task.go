package model

import "strings"

// Category is one of the three fixed workflow stages of a task.
type Category string

const (
	CategoryNotStarted Category = "NotStarted"
	CategoryInProgress Category = "InProgress"
	CategoryFinished   Category = "Finished"
)

// Categories returns the board columns in display order.
func Categories() []Category {
	return []Category{CategoryNotStarted, CategoryInProgress, CategoryFinished}
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNotStarted, CategoryInProgress, CategoryFinished:
		return true
	default:
		return false
	}
}

// Title is the column heading shown to users.
func (c Category) Title() string {
	switch c {
	case CategoryNotStarted:
		return "Not Yet Started"
	case CategoryInProgress:
		return "In Progress"
	case CategoryFinished:
		return "Finished"
	default:
		return string(c)
	}
}

// ParseCategory accepts either the identifier ("InProgress") or the
// column title ("In Progress"), ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Title()) {
			return c, true
		}
	}
	return "", false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority maps s onto a priority. Anything unrecognised becomes Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Task is a single card on the board.
type Task struct {
	ID          string
	Name        string
	Description string
	DueDate     string // YYYY-MM-DD, stored as given
	Priority    Priority
	SharedWith  []string
	Category    Category
}

// SplitSharedWith turns "alice, bob,, carol " into [alice bob carol].
// Blank input yields an empty, non-nil slice.
func SplitSharedWith(raw string) []string {
	users := []string{}
	for _, part := range strings.Split(raw, ",") {
		if user := strings.TrimSpace(part); user != "" {
			users = append(users, user)
		}
	}
	return users
}

// SharedWithLabel renders the share list the way the board shows it.
func (t Task) SharedWithLabel() string {
	if len(t.SharedWith) == 0 {
		return "No one"
	}
	return strings.Join(t.SharedWith, ", ")
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	t.SharedWith = append([]string{}, t.SharedWith...)
	return t
}
