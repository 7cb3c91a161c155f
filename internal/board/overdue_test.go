package board_test

import (
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	const today = "2024-06-01"

	assert.True(t, board.IsOverdue(model.Task{DueDate: "2024-05-01"}, today))
	assert.False(t, board.IsOverdue(model.Task{DueDate: "2024-07-01"}, today))
	assert.False(t, board.IsOverdue(model.Task{DueDate: today}, today))
	assert.False(t, board.IsOverdue(model.Task{DueDate: ""}, today))
}

func TestEvaluator_UsesInjectedClockInUTC(t *testing.T) {
	// 23:30 on May 31st in UTC-5 is already June 1st in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	e := board.Evaluator{Now: func() time.Time {
		return time.Date(2024, time.May, 31, 23, 30, 0, 0, loc)
	}}

	assert.Equal(t, "2024-06-01", e.Today())
	assert.True(t, e.IsOverdue(model.Task{DueDate: "2024-05-31"}))
	assert.False(t, e.IsOverdue(model.Task{DueDate: "2024-06-01"}))
}

func TestEvaluator_DefaultsToWallClock(t *testing.T) {
	e := board.Evaluator{}

	assert.Equal(t, time.Now().UTC().Format(board.DateLayout), e.Today())
}
