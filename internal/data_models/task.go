package dto

import (
	"time"

	"task-timer.com/task-timer/internal/constants"
	"task-timer.com/task-timer/internal/services"
	"task-timer.com/task-timer/internal/timefmt"
)

type CreateTaskRequest struct {
	Name            string `json:"name"`
	DurationMinutes *int   `json:"duration_minutes"`
}

type TaskResponse struct {
	ID                   string              `json:"id"`
	Index                int                 `json:"index"`
	Name                 string              `json:"name"`
	DurationMinutes      int                 `json:"duration_minutes"`
	IsComplete           bool                `json:"is_complete"`
	IsActive             bool                `json:"is_active"`
	HasTimer             bool                `json:"has_timer"`
	State                constants.TaskState `json:"state"`
	TimeRemainingSeconds int                 `json:"time_remaining_seconds"`
	TimeRemaining        string              `json:"time_remaining"`
	CreatedAt            time.Time           `json:"created_at"`
}

type ListTasksResponse struct {
	Count          int            `json:"count"`
	Tasks          []TaskResponse `json:"tasks"`
	TotalTimeSpent string         `json:"total_time_spent"`
}

type SummaryResponse struct {
	TaskCount         int    `json:"task_count"`
	CompletedCount    int    `json:"completed_count"`
	ActiveCount       int    `json:"active_count"`
	TotalSecondsSpent int    `json:"total_seconds_spent"`
	TotalTimeSpent    string `json:"total_time_spent"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func NewTaskResponse(v services.TaskView) TaskResponse {
	return TaskResponse{
		ID:                   v.ID,
		Index:                v.Index,
		Name:                 v.Name,
		DurationMinutes:      v.DurationMinutes,
		IsComplete:           v.IsComplete,
		IsActive:             v.IsActive,
		HasTimer:             v.HasTimer,
		State:                v.State(),
		TimeRemainingSeconds: v.TimeRemainingSeconds,
		TimeRemaining:        timefmt.FormatMinutesSeconds(v.TimeRemainingSeconds),
		CreatedAt:            v.CreatedAt,
	}
}

func NewListTasksResponse(o services.Overview) ListTasksResponse {
	tasks := make([]TaskResponse, 0, len(o.Tasks))
	for _, v := range o.Tasks {
		tasks = append(tasks, NewTaskResponse(v))
	}

	return ListTasksResponse{
		Count:          len(tasks),
		Tasks:          tasks,
		TotalTimeSpent: o.TotalTimeSpent(),
	}
}

func NewSummaryResponse(o services.Overview) SummaryResponse {
	s := SummaryResponse{
		TaskCount:         len(o.Tasks),
		TotalSecondsSpent: o.TotalSecondsSpent,
		TotalTimeSpent:    o.TotalTimeSpent(),
	}
	for _, v := range o.Tasks {
		if v.IsComplete {
			s.CompletedCount++
		}
		if v.IsActive {
			s.ActiveCount++
		}
	}
	return s
}
