package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "task-timer.com/task-timer/internal/errors"
	model "task-timer.com/task-timer/internal/models"
)

// EventRepository is the append-only task event journal.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.TaskEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Create(event).Error
}

// ListRecent returns the newest events first.
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]model.TaskEvent, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidLimit
	}

	var events []model.TaskEvent
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("seq desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ListByTask returns one task's events oldest first. Events outlive the task,
// so a deleted task still has its history.
func (r *EventRepository) ListByTask(ctx context.Context, taskID string) ([]model.TaskEvent, error) {
	var events []model.TaskEvent
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Order("seq asc").
		Find(&events).Error
	return events, err
}
