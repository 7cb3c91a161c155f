package board

import (
	"iter"
	"slices"

	"taskboard/internal/model"
)

// Collection is an immutable, ordered snapshot of a board's tasks.
// Order is meaningful only among tasks of the same category.
// Mutating operations return a new Collection and leave the receiver as it was.
type Collection struct {
	tasks []model.Task
}

// NewCollection builds a snapshot from tasks in the given order.
func NewCollection(tasks ...model.Task) (Collection, error) {
	c := Collection{}
	for _, t := range tasks {
		next, err := c.Append(t)
		if err != nil {
			return Collection{}, err
		}
		c = next
	}
	return c, nil
}

func (c Collection) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the master sequence.
func (c Collection) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	for i, t := range c.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Append adds task after every existing task.
func (c Collection) Append(task model.Task) (Collection, error) {
	if _, ok := c.Find(task.ID); ok {
		return c, ErrDuplicateID
	}
	if !task.Category.IsValid() {
		return c, ErrInvalidCategory
	}
	tasks := make([]model.Task, 0, len(c.tasks)+1)
	tasks = append(tasks, c.tasks...)
	tasks = append(tasks, task.Clone())
	return Collection{tasks: tasks}, nil
}

// ByCategory yields the tasks of one category in master order.
// The sequence can be ranged over any number of times.
func (c Collection) ByCategory(category model.Category) iter.Seq[model.Task] {
	return func(yield func(model.Task) bool) {
		for _, t := range c.tasks {
			if t.Category != category {
				continue
			}
			if !yield(t.Clone()) {
				return
			}
		}
	}
}

// View is the column as the board renders it.
func (c Collection) View(category model.Category) []model.Task {
	view := slices.Collect(c.ByCategory(category))
	if view == nil {
		view = []model.Task{}
	}
	return view
}

func (c Collection) Count(category model.Category) int {
	n := 0
	for _, t := range c.tasks {
		if t.Category == category {
			n++
		}
	}
	return n
}

func (c Collection) Find(id string) (model.Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

// Equal reports whether both snapshots hold the same tasks in the same order.
func (c Collection) Equal(other Collection) bool {
	return slices.EqualFunc(c.tasks, other.tasks, func(a, b model.Task) bool {
		return a.ID == b.ID &&
			a.Name == b.Name &&
			a.Description == b.Description &&
			a.DueDate == b.DueDate &&
			a.Priority == b.Priority &&
			a.Category == b.Category &&
			slices.Equal(a.SharedWith, b.SharedWith)
	})
}
