package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	middleware "task-timer.com/task-timer/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int, log zerolog.Logger) {
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.DELETE("/tasks", h.DeleteTaskAt)
	e.GET("/tasks/:id", h.GetTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/toggle", h.ToggleTimer)
	e.POST("/tasks/:id/complete", h.CompleteTask)
	e.GET("/tasks/:id/events", h.ListTaskEvents)
	e.GET("/summary", h.Summary)
	e.GET("/events", h.ListEvents)
}
