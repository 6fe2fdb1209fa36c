package services

import (
	"fmt"

	"task-timer.com/task-timer/internal/constants"
	apperrors "task-timer.com/task-timer/internal/errors"
	model "task-timer.com/task-timer/internal/models"
	"task-timer.com/task-timer/internal/scheduler"
)

// ToggleTimer starts an idle task's countdown or pauses a running one.
// Completed tasks are returned unchanged.
func (s *TaskService) ToggleTimer(id string) (model.Task, error) {
	s.mu.Lock()
	task, ok := s.repo.FindByID(id)
	if !ok {
		s.mu.Unlock()
		return model.Task{}, apperrors.ErrTaskNotFound
	}

	if task.IsComplete {
		snapshot := *task
		s.mu.Unlock()
		return snapshot, nil
	}

	var typ constants.EventType
	if task.IsActive {
		s.timers.Cancel(task.ID)
		task.IsActive = false
		typ = constants.EventTimerPaused
	} else {
		taskID := task.ID
		if _, err := s.timers.Start(taskID, func(h scheduler.Handle) { s.tick(taskID, h) }); err != nil {
			s.mu.Unlock()
			s.log.Error().Err(err).Str("task_id", taskID).Msg("timer start failed")
			return model.Task{}, fmt.Errorf("%w: %v", apperrors.ErrTimerUnavailable, err)
		}
		task.IsActive = true
		typ = constants.EventTimerStarted
	}

	snapshot := *task
	event := s.eventLocked(typ, snapshot)
	s.mu.Unlock()

	s.log.Debug().Str("task_id", snapshot.ID).Str("state", string(snapshot.State())).Int("remaining_seconds", snapshot.TimeRemainingSeconds).Msg("timer toggled")
	s.publish(event)

	return snapshot, nil
}

// CompleteTask cancels any pending tick and marks the task complete, whatever
// time it has left.
func (s *TaskService) CompleteTask(id string) (model.Task, error) {
	s.mu.Lock()
	task, ok := s.repo.FindByID(id)
	if !ok {
		s.mu.Unlock()
		return model.Task{}, apperrors.ErrTaskNotFound
	}

	if task.IsComplete {
		snapshot := *task
		s.mu.Unlock()
		return snapshot, nil
	}

	s.completeLocked(task)
	snapshot := *task
	event := s.eventLocked(constants.EventTaskCompleted, snapshot)
	s.mu.Unlock()

	s.completed(snapshot, event)
	return snapshot, nil
}

// tick advances one running task by a second. A tick whose handle is no longer
// the task's current one was cancelled after dispatch and is dropped.
func (s *TaskService) tick(id string, h scheduler.Handle) {
	s.mu.Lock()
	if s.timers.Current(id) != h {
		s.mu.Unlock()
		return
	}

	task, ok := s.repo.FindByID(id)
	if !ok || !task.IsActive {
		s.timers.Cancel(id)
		s.mu.Unlock()
		return
	}

	if task.TimeRemainingSeconds > 0 {
		task.TimeRemainingSeconds--
		if task.TimeRemainingSeconds > 0 {
			s.mu.Unlock()
			return
		}
	}

	s.completeLocked(task)
	snapshot := *task
	event := s.eventLocked(constants.EventTaskCompleted, snapshot)
	s.mu.Unlock()

	s.completed(snapshot, event)
}

// completeLocked cancels the tick before touching state.
func (s *TaskService) completeLocked(task *model.Task) {
	s.timers.Cancel(task.ID)
	task.IsComplete = true
	task.IsActive = false
}

func (s *TaskService) completed(task model.Task, event model.TaskEvent) {
	s.log.Info().Str("task_id", task.ID).Int("elapsed_seconds", task.ElapsedSeconds()).Msg("task completed")
	s.publish(event)
}
