package constants

import "math"

type TaskState string

const (
	StateIdle     TaskState = "idle"
	StateRunning  TaskState = "running"
	StateComplete TaskState = "complete"
)

type EventType string

const (
	EventTaskAdded     EventType = "task.added"
	EventTimerStarted  EventType = "timer.started"
	EventTimerPaused   EventType = "timer.paused"
	EventTaskCompleted EventType = "task.completed"
	EventTaskDeleted   EventType = "task.deleted"
)

// DefaultDurationMinutes is the duration a fresh submission form starts with.
const DefaultDurationMinutes = 1

// MaxDurationMinutes is the largest duration whose length in seconds fits in
// an int.
const MaxDurationMinutes = math.MaxInt / 60
