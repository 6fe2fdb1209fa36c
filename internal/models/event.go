package model

import (
	"time"

	"task-timer.com/task-timer/internal/constants"
)

// TaskEvent records one state transition. Events are an audit trail only and
// are never replayed into task state. Seq orders events stamped within the
// same process.
type TaskEvent struct {
	ID               string              `gorm:"primaryKey;size:36" json:"id"`
	Seq              int64               `gorm:"not null;index" json:"seq"`
	Type             constants.EventType `gorm:"type:varchar(32);not null;index" json:"type"`
	TaskID           string              `gorm:"size:36;not null;index" json:"task_id"`
	TaskName         string              `gorm:"not null" json:"task_name"`
	RemainingSeconds int                 `gorm:"not null" json:"remaining_seconds"`
	CreatedAt        time.Time           `json:"created_at"`
}
