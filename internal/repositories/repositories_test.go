package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-timer.com/task-timer/internal/constants"
	apperrors "task-timer.com/task-timer/internal/errors"
	model "task-timer.com/task-timer/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.TaskEvent{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestTaskRepository_OrderAndRemoval(t *testing.T) {
	repo := NewTaskRepository()
	now := time.Now()

	repo.Append(model.NewTask("a", "first", 1, now))
	repo.Append(model.NewTask("b", "second", 2, now))
	repo.Append(model.NewTask("c", "third", 3, now))

	if repo.IndexOf("b") != 1 {
		t.Errorf("expected index 1, got %d", repo.IndexOf("b"))
	}

	removed, ok := repo.RemoveAt(1)
	if !ok || removed.ID != "b" {
		t.Fatalf("expected to remove b, got %+v ok=%v", removed, ok)
	}

	tasks := repo.List()
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "c" {
		t.Errorf("unexpected order after removal: %+v", tasks)
	}

	if _, ok := repo.RemoveAt(5); ok {
		t.Error("out of range removal must report false")
	}
	if _, ok := repo.RemoveAt(-1); ok {
		t.Error("negative index removal must report false")
	}
	if _, ok := repo.FindByID("missing"); ok {
		t.Error("unknown id must not be found")
	}
}

func TestTaskRepository_ListReturnsCopies(t *testing.T) {
	repo := NewTaskRepository()
	repo.Append(model.NewTask("a", "first", 1, time.Now()))

	tasks := repo.List()
	tasks[0].TimeRemainingSeconds = 0

	live, _ := repo.At(0)
	if live.TimeRemainingSeconds != 60 {
		t.Errorf("mutating a listed copy changed the store: %d", live.TimeRemainingSeconds)
	}
}

func TestEventRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	types := []constants.EventType{
		constants.EventTaskAdded,
		constants.EventTimerStarted,
		constants.EventTaskCompleted,
	}

	for i, typ := range types {
		event := &model.TaskEvent{
			Type:      typ,
			TaskID:    "task-1",
			TaskName:  "Write report",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.ID == "" {
			t.Error("expected event ID to be set")
		}
	}

	other := &model.TaskEvent{Type: constants.EventTaskAdded, TaskID: "task-2", TaskName: "Other", CreatedAt: base}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	recent, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(recent) != 2 || recent[0].Type != constants.EventTaskCompleted {
		t.Errorf("unexpected recent events: %+v", recent)
	}

	byTask, err := repo.ListByTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("failed to list events by task: %v", err)
	}
	if len(byTask) != 3 || byTask[0].Type != constants.EventTaskAdded {
		t.Errorf("unexpected task events: %+v", byTask)
	}

	if _, err := repo.ListRecent(ctx, 0); !errors.Is(err, apperrors.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestEventRepository_SeqBreaksTimestampTies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	// Inserted out of order on purpose: same timestamp, descending seq.
	for _, e := range []model.TaskEvent{
		{Seq: 3, Type: constants.EventTaskDeleted, TaskID: "task-1", TaskName: "Tie", CreatedAt: at},
		{Seq: 1, Type: constants.EventTaskAdded, TaskID: "task-1", TaskName: "Tie", CreatedAt: at},
		{Seq: 2, Type: constants.EventTaskCompleted, TaskID: "task-1", TaskName: "Tie", CreatedAt: at},
	} {
		event := e
		if err := repo.Create(ctx, &event); err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
	}

	recent, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	want := []constants.EventType{constants.EventTaskDeleted, constants.EventTaskCompleted, constants.EventTaskAdded}
	if len(recent) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(recent))
	}
	for i := range want {
		if recent[i].Type != want[i] {
			t.Errorf("recent[%d]: expected %s, got %s", i, want[i], recent[i].Type)
		}
	}

	byTask, err := repo.ListByTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("failed to list events by task: %v", err)
	}
	for i := range want {
		if byTask[i].Type != want[len(want)-1-i] {
			t.Errorf("byTask[%d]: expected %s, got %s", i, want[len(want)-1-i], byTask[i].Type)
		}
	}
}
