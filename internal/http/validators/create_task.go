package validators

import (
	"strconv"

	dto "task-timer.com/task-timer/internal/data_models"
	apperrors "task-timer.com/task-timer/internal/errors"
	"task-timer.com/task-timer/internal/services"
)

// TaskFormFromRequest fills a submission form, defaulting a missing duration
// to defaultDuration. Content checks belong to the service, which silently
// ignores blank names and non-positive durations.
func TaskFormFromRequest(r *dto.CreateTaskRequest, defaultDuration int) services.TaskForm {
	form := services.TaskForm{Name: r.Name, DurationMinutes: defaultDuration}
	if r.DurationMinutes != nil {
		form.DurationMinutes = *r.DurationMinutes
	}
	return form
}

func ParseIndex(raw string) (int, error) {
	if raw == "" {
		return 0, apperrors.ErrInvalidIndex
	}

	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, apperrors.ErrInvalidIndex
	}
	return index, nil
}

func ParseLimit(raw string, defaultLimit, maxLimit int) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, apperrors.ErrInvalidLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}
