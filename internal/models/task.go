package model

import (
	"time"

	"task-timer.com/task-timer/internal/constants"
)

type Task struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	DurationMinutes      int       `json:"duration_minutes"`
	IsComplete           bool      `json:"is_complete"`
	IsActive             bool      `json:"is_active"`
	TimeRemainingSeconds int       `json:"time_remaining_seconds"`
	CreatedAt            time.Time `json:"created_at"`
}

func NewTask(id, name string, durationMinutes int, now time.Time) Task {
	return Task{
		ID:                   id,
		Name:                 name,
		DurationMinutes:      durationMinutes,
		TimeRemainingSeconds: durationMinutes * 60,
		CreatedAt:            now,
	}
}

func (t Task) TotalSeconds() int {
	return t.DurationMinutes * 60
}

// ElapsedSeconds is the time spent on the task so far.
func (t Task) ElapsedSeconds() int {
	return t.TotalSeconds() - t.TimeRemainingSeconds
}

func (t Task) State() constants.TaskState {
	switch {
	case t.IsComplete:
		return constants.StateComplete
	case t.IsActive:
		return constants.StateRunning
	default:
		return constants.StateIdle
	}
}
