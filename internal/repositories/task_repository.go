package repository

import (
	model "task-timer.com/task-timer/internal/models"
)

// TaskRepository is the ordered in-memory task list. It is not safe for
// concurrent use; TaskService serializes every call.
type TaskRepository struct {
	tasks []*model.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

func (r *TaskRepository) Append(task model.Task) {
	r.tasks = append(r.tasks, &task)
}

// At returns the live record at index for in-place mutation.
func (r *TaskRepository) At(index int) (*model.Task, bool) {
	if index < 0 || index >= len(r.tasks) {
		return nil, false
	}
	return r.tasks[index], true
}

func (r *TaskRepository) IndexOf(id string) int {
	for i, task := range r.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (r *TaskRepository) FindByID(id string) (*model.Task, bool) {
	return r.At(r.IndexOf(id))
}

func (r *TaskRepository) RemoveAt(index int) (model.Task, bool) {
	task, ok := r.At(index)
	if !ok {
		return model.Task{}, false
	}

	removed := *task
	r.tasks = append(r.tasks[:index], r.tasks[index+1:]...)
	return removed, true
}

// List returns copies in insertion order.
func (r *TaskRepository) List() []model.Task {
	tasks := make([]model.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, *task)
	}
	return tasks
}

func (r *TaskRepository) Len() int {
	return len(r.tasks)
}
