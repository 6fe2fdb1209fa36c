package services

import "task-timer.com/task-timer/internal/constants"

// TaskForm is the pending submission a client edits before calling Submit.
type TaskForm struct {
	Name            string
	DurationMinutes int
}

func NewTaskForm() TaskForm {
	return TaskForm{DurationMinutes: constants.DefaultDurationMinutes}
}

func (f *TaskForm) Reset() {
	*f = NewTaskForm()
}
