package events

import (
	"context"
	"errors"

	model "task-timer.com/task-timer/internal/models"
)

// Publisher delivers task events to an outside observer. Implementations must
// not touch task state.
type Publisher interface {
	Publish(ctx context.Context, event model.TaskEvent) error
}

type nop struct{}

func Nop() Publisher { return nop{} }

func (nop) Publish(context.Context, model.TaskEvent) error { return nil }

type fanout []Publisher

// Fanout publishes to every non-nil publisher and joins their errors.
func Fanout(publishers ...Publisher) Publisher {
	var out fanout
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return Nop()
	}
	return out
}

func (f fanout) Publish(ctx context.Context, event model.TaskEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
