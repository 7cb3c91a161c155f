package board

import (
	"sync"

	"taskboard/internal/model"
)

// Board owns the current snapshot of one session's tasks and applies
// writes one at a time. A write either swaps in a complete new snapshot
// or leaves the old one in place.
type Board struct {
	mu    sync.Mutex
	tasks Collection
	newID IDGenerator
}

// New returns an empty board. A nil newID falls back to NewID.
func New(newID IDGenerator) *Board {
	if newID == nil {
		newID = NewID
	}
	return &Board{newID: newID}
}

// Snapshot returns the current collection. It is safe to keep and read
// after later writes.
func (b *Board) Snapshot() Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tasks
}

// CreateTask validates input and appends the new task to the board.
func (b *Board) CreateTask(input TaskInput) (model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, err := NewTask(input, b.newID())
	if err != nil {
		return model.Task{}, err
	}
	next, err := b.tasks.Append(task)
	if err != nil {
		return model.Task{}, err
	}
	b.tasks = next
	return task, nil
}

// Move applies a drag-and-drop and returns the resulting snapshot.
func (b *Board) Move(source Location, dest *Location) (Collection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := Move(b.tasks, source, dest)
	if err != nil {
		return b.tasks, err
	}
	b.tasks = next
	return next, nil
}
