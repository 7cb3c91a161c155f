package board

import (
	"time"

	"taskboard/internal/model"
)

// DateLayout is the YYYY-MM-DD form used for due dates. Strings in this
// form compare the same way lexically and chronologically.
const DateLayout = "2006-01-02"

// IsOverdue reports whether task is due strictly before referenceDate.
// Tasks without a due date are never overdue.
func IsOverdue(task model.Task, referenceDate string) bool {
	return task.DueDate != "" && task.DueDate < referenceDate
}

// Evaluator computes overdue flags against "today".
type Evaluator struct {
	Now func() time.Time
}

// Today is the current UTC date in DateLayout.
func (e Evaluator) Today() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().UTC().Format(DateLayout)
}

func (e Evaluator) IsOverdue(task model.Task) bool {
	return IsOverdue(task, e.Today())
}
