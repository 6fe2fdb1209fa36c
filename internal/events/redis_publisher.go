package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	model "task-timer.com/task-timer/internal/models"
)

// RedisPublisher sends each event as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  rueidis.Client
	channel string
}

func NewRedisPublisher(client rueidis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, event model.TaskEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(string(payload)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	return nil
}
