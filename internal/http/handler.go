package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-timer.com/task-timer/internal/data_models"
	apperrors "task-timer.com/task-timer/internal/errors"
	"task-timer.com/task-timer/internal/http/validators"
	model "task-timer.com/task-timer/internal/models"
	repository "task-timer.com/task-timer/internal/repositories"
	"task-timer.com/task-timer/internal/services"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

type Handler struct {
	taskService     *services.TaskService
	events          *repository.EventRepository
	defaultDuration int
}

func NewHandler(taskService *services.TaskService, events *repository.EventRepository, defaultDuration int) *Handler {
	return &Handler{
		taskService:     taskService,
		events:          events,
		defaultDuration: defaultDuration,
	}
}

// CreateTask answers 201 with the new task, or 204 when the submission was
// ignored for a blank name or non-positive duration.
func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	form := validators.TaskFormFromRequest(&req, h.defaultDuration)
	task, ok := h.taskService.Submit(&form)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	view, err := h.taskService.GetTask(task.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewTaskResponse(view))
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	view, err := h.taskService.GetTask(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskResponse(view))
}

func (h *Handler) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewListTasksResponse(h.taskService.Overview()))
}

func (h *Handler) ToggleTimer(c echo.Context) error {
	return h.transition(c, h.taskService.ToggleTimer)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	return h.transition(c, h.taskService.CompleteTask)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if err := h.taskService.DeleteTaskByID(id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteTaskAt removes the task at the position given by ?index=.
func (h *Handler) DeleteTaskAt(c echo.Context) error {
	index, err := validators.ParseIndex(c.QueryParam("index"))
	if err != nil {
		return err
	}

	if !h.taskService.DeleteTask(index) {
		return apperrors.ErrTaskNotFound
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSummaryResponse(h.taskService.Overview()))
}

func (h *Handler) ListEvents(c echo.Context) error {
	limit, err := validators.ParseLimit(c.QueryParam("limit"), defaultEventLimit, maxEventLimit)
	if err != nil {
		return err
	}

	events, err := h.events.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(events),
		"events": events,
	})
}

// ListTaskEvents returns a task's journal oldest first. Deleted tasks keep
// their history, so an unknown id yields an empty list.
func (h *Handler) ListTaskEvents(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	events, err := h.events.ListByTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(events),
		"events": events,
	})
}

func (h *Handler) transition(c echo.Context, op func(id string) (model.Task, error)) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if _, err := op(id); err != nil {
		return err
	}

	view, err := h.taskService.GetTask(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskResponse(view))
}
