// Package scheduler owns the periodic callbacks that drive running task timers.
//
// A Clock dispatches recurring callbacks. CronClock is backed by robfig/cron
// and runs on wall-clock time; ManualClock only moves when Advance is called,
// which lets timer behavior be tested without real delays.
//
// Registry sits on top of a Clock and maps a key (a task id) to the handle of
// its single outstanding periodic callback. Cancellation is always an explicit
// Registry.Cancel call.
package scheduler

import (
	"errors"
	"time"
)

type EntryID int

type Clock interface {
	// Every registers fn to run once per interval until the entry is removed.
	Every(interval time.Duration, fn func()) (EntryID, error)
	Remove(id EntryID)
}

var ErrInvalidInterval = errors.New("scheduler: interval must be at least one second")
