package board

import (
	"fmt"
	"slices"

	"taskboard/internal/model"
)

// Location is a drop position expressed in column coordinates:
// Index counts only tasks of Category.
type Location struct {
	Category model.Category
	Index    int
}

// MasterIndex translates a view-local index into a position in the
// master sequence of c. It reports false if the view has no such index.
func MasterIndex(c Collection, category model.Category, viewIndex int) (int, bool) {
	if viewIndex < 0 {
		return -1, false
	}
	n := 0
	for i, t := range c.tasks {
		if t.Category != category {
			continue
		}
		if n == viewIndex {
			return i, true
		}
		n++
	}
	return -1, false
}

// InsertionIndex returns the master position at which a task has to be
// inserted into tasks to end up at viewIndex within category.
// viewIndex is clamped to [0, count]; at count the task goes right after
// the last task of the category, or at the very end if the column is empty.
func InsertionIndex(tasks []model.Task, category model.Category, viewIndex int) int {
	if viewIndex < 0 {
		viewIndex = 0
	}
	n, last := 0, -1
	for i, t := range tasks {
		if t.Category != category {
			continue
		}
		if n == viewIndex {
			return i
		}
		n++
		last = i
	}
	if last >= 0 {
		return last + 1
	}
	return len(tasks)
}

// Move applies one drag-and-drop. A nil dest means the card was dropped
// outside every column and c is returned as is. On error c is returned
// unchanged as well.
//
// Only a drop onto the card's current slot is a no-op. Replaying the same
// cross-column move picks up whichever card now sits at source.
func Move(c Collection, source Location, dest *Location) (Collection, error) {
	if dest == nil {
		return c, nil
	}
	if !source.Category.IsValid() {
		return c, fmt.Errorf("%w: %q", ErrInvalidCategory, source.Category)
	}
	if !dest.Category.IsValid() {
		return c, fmt.Errorf("%w: %q", ErrInvalidCategory, dest.Category)
	}

	from, ok := MasterIndex(c, source.Category, source.Index)
	if !ok {
		return c, fmt.Errorf("%w: %s has no task at %d", ErrIndexOutOfRange, source.Category, source.Index)
	}

	// Dropped back where it already was.
	if source.Category == dest.Category && clamp(dest.Index, 0, c.Count(dest.Category)-1) == source.Index {
		return c, nil
	}

	moved := c.tasks[from].Clone()
	moved.Category = dest.Category

	rest := make([]model.Task, 0, len(c.tasks))
	rest = append(rest, c.tasks[:from]...)
	rest = append(rest, c.tasks[from+1:]...)

	at := InsertionIndex(rest, dest.Category, dest.Index)
	return Collection{tasks: slices.Insert(rest, at, moved)}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
