package events

import (
	"context"
	"fmt"

	model "task-timer.com/task-timer/internal/models"
	repository "task-timer.com/task-timer/internal/repositories"
)

type JournalPublisher struct {
	repo *repository.EventRepository
}

func NewJournalPublisher(repo *repository.EventRepository) *JournalPublisher {
	return &JournalPublisher{repo: repo}
}

func (j *JournalPublisher) Publish(ctx context.Context, event model.TaskEvent) error {
	if err := j.repo.Create(ctx, &event); err != nil {
		return fmt.Errorf("journal %s: %w", event.Type, err)
	}
	return nil
}
