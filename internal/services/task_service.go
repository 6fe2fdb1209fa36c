package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"task-timer.com/task-timer/internal/constants"
	apperrors "task-timer.com/task-timer/internal/errors"
	"task-timer.com/task-timer/internal/events"
	model "task-timer.com/task-timer/internal/models"
	repository "task-timer.com/task-timer/internal/repositories"
	"task-timer.com/task-timer/internal/scheduler"
	"task-timer.com/task-timer/internal/timefmt"
)

const publishTimeout = 2 * time.Second

// TaskService owns the task list and the per-task countdown timers.
//
// User operations and timer callbacks all take mu, which gives them the same
// one-at-a-time ordering an event loop would. Nothing blocks while mu is held;
// events are published after it is released.
type TaskService struct {
	mu        sync.Mutex
	repo      *repository.TaskRepository
	timers    *scheduler.Registry
	publisher events.Publisher
	log       zerolog.Logger
	now       func() time.Time
	seq       int64
}

type TaskView struct {
	model.Task
	Index    int
	HasTimer bool
}

// Overview is the task list and its total time spent, read together.
type Overview struct {
	Tasks             []TaskView
	TotalSecondsSpent int
}

func (o Overview) TotalTimeSpent() string {
	return timefmt.FormatHoursMinutesSeconds(o.TotalSecondsSpent)
}

func NewTaskService(
	repo *repository.TaskRepository,
	timers *scheduler.Registry,
	publisher events.Publisher,
	log zerolog.Logger,
) *TaskService {
	if publisher == nil {
		publisher = events.Nop()
	}

	return &TaskService{
		repo:      repo,
		timers:    timers,
		publisher: publisher,
		log:       log.With().Str("component", "tasks").Logger(),
		now:       time.Now,
	}
}

// AddTask appends a new idle task. Blank names and durations outside
// [1, MaxDurationMinutes] are ignored and reported with ok=false.
func (s *TaskService) AddTask(name string, durationMinutes int) (model.Task, bool) {
	if strings.TrimSpace(name) == "" || durationMinutes <= 0 || durationMinutes > constants.MaxDurationMinutes {
		s.log.Debug().Str("name", name).Int("duration_minutes", durationMinutes).Msg("task rejected")
		return model.Task{}, false
	}

	s.mu.Lock()
	task := model.NewTask(uuid.NewString(), name, durationMinutes, s.now().UTC())
	s.repo.Append(task)
	event := s.eventLocked(constants.EventTaskAdded, task)
	s.mu.Unlock()

	s.log.Info().Str("task_id", task.ID).Str("name", task.Name).Int("duration_minutes", durationMinutes).Msg("task added")
	s.publish(event)

	return task, true
}

// Submit adds the task described by form and resets the form on success.
func (s *TaskService) Submit(form *TaskForm) (model.Task, bool) {
	task, ok := s.AddTask(form.Name, form.DurationMinutes)
	if ok {
		form.Reset()
	}
	return task, ok
}

// DeleteTask cancels any pending tick for the task at index and removes it.
// An out-of-range index is a no-op.
func (s *TaskService) DeleteTask(index int) bool {
	s.mu.Lock()
	event, ok := s.deleteLocked(index)
	s.mu.Unlock()

	if ok {
		s.deleted(index, event)
	}
	return ok
}

func (s *TaskService) DeleteTaskByID(id string) error {
	s.mu.Lock()
	index := s.repo.IndexOf(id)
	event, ok := s.deleteLocked(index)
	s.mu.Unlock()

	if !ok {
		return apperrors.ErrTaskNotFound
	}

	s.deleted(index, event)
	return nil
}

func (s *TaskService) deleteLocked(index int) (model.TaskEvent, bool) {
	task, ok := s.repo.At(index)
	if !ok {
		return model.TaskEvent{}, false
	}

	s.timers.Cancel(task.ID)
	removed, _ := s.repo.RemoveAt(index)
	return s.eventLocked(constants.EventTaskDeleted, removed), true
}

func (s *TaskService) deleted(index int, event model.TaskEvent) {
	s.log.Info().Str("task_id", event.TaskID).Int("index", index).Msg("task deleted")
	s.publish(event)
}

func (s *TaskService) GetTask(id string) (TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.repo.IndexOf(id)
	task, ok := s.repo.At(index)
	if !ok {
		return TaskView{}, apperrors.ErrTaskNotFound
	}

	return s.viewLocked(index, *task), nil
}

func (s *TaskService) ListTasks() []TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewsLocked(s.repo.List())
}

// Overview returns the list and the total computed from the same snapshot.
func (s *TaskService) Overview() Overview {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.repo.List()
	return Overview{
		Tasks:             s.viewsLocked(tasks),
		TotalSecondsSpent: totalElapsed(tasks),
	}
}

// TotalSecondsSpent sums elapsed time over every task, completed ones included.
func (s *TaskService) TotalSecondsSpent() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return totalElapsed(s.repo.List())
}

func (s *TaskService) TotalTimeSpent() string {
	return timefmt.FormatHoursMinutesSeconds(s.TotalSecondsSpent())
}

func totalElapsed(tasks []model.Task) int {
	total := 0
	for _, task := range tasks {
		total += task.ElapsedSeconds()
	}
	return total
}

// Shutdown cancels every running timer and returns the affected tasks to idle.
func (s *TaskService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.timers.CancelAll()
	for i := 0; i < s.repo.Len(); i++ {
		task, _ := s.repo.At(i)
		task.IsActive = false
	}

	s.log.Info().Int("timers", n).Msg("task timers stopped")
}

func (s *TaskService) viewLocked(index int, task model.Task) TaskView {
	return TaskView{
		Task:     task,
		Index:    index,
		HasTimer: s.timers.Current(task.ID) != 0,
	}
}

func (s *TaskService) viewsLocked(tasks []model.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for i, task := range tasks {
		views = append(views, s.viewLocked(i, task))
	}
	return views
}

// eventLocked stamps the transition while mu is held, so Seq and CreatedAt
// follow the order in which transitions happened rather than publish order.
func (s *TaskService) eventLocked(typ constants.EventType, task model.Task) model.TaskEvent {
	s.seq++
	return model.TaskEvent{
		ID:               uuid.NewString(),
		Seq:              s.seq,
		Type:             typ,
		TaskID:           task.ID,
		TaskName:         task.Name,
		RemainingSeconds: task.TimeRemainingSeconds,
		CreatedAt:        s.now().UTC(),
	}
}

func (s *TaskService) publish(event model.TaskEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(event.Type)).Str("task_id", event.TaskID).Msg("event publish failed")
	}
}
