package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// CronClock runs callbacks on robfig/cron's constant-delay schedules. Each
// callback runs on its own goroutine; callers serialize state themselves.
type CronClock struct {
	c *cron.Cron
}

func NewCronClock(log zerolog.Logger) *CronClock {
	log = log.With().Str("component", "cron").Logger()
	logger := cron.PrintfLogger(&log)

	return &CronClock{
		c: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
	}
}

func (k *CronClock) Every(interval time.Duration, fn func()) (EntryID, error) {
	// cron.Every rounds down to whole seconds.
	if interval < time.Second {
		return 0, ErrInvalidInterval
	}

	id := k.c.Schedule(cron.Every(interval), cron.FuncJob(fn))
	return EntryID(id), nil
}

func (k *CronClock) Remove(id EntryID) {
	k.c.Remove(cron.EntryID(id))
}

func (k *CronClock) Start() {
	k.c.Start()
}

// Stop halts dispatching and waits for running callbacks or ctx, whichever
// comes first.
func (k *CronClock) Stop(ctx context.Context) {
	done := k.c.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (k *CronClock) Len() int {
	return len(k.c.Entries())
}
