package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	config "task-timer.com/task-timer/internal/configs"
	"task-timer.com/task-timer/internal/constants"
	dto "task-timer.com/task-timer/internal/data_models"
	"task-timer.com/task-timer/internal/events"
	repository "task-timer.com/task-timer/internal/repositories"
	"task-timer.com/task-timer/internal/scheduler"
	"task-timer.com/task-timer/internal/services"
)

type testServer struct {
	e     *echo.Echo
	clock *scheduler.ManualClock
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	db, err := config.NewDatabaseClient(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	eventRepo := repository.NewEventRepository(db)

	clock := scheduler.NewManualClock()
	service := services.NewTaskService(
		repository.NewTaskRepository(),
		scheduler.NewRegistry(clock, time.Second),
		events.NewJournalPublisher(eventRepo),
		zerolog.Nop(),
	)

	e := echo.New()
	Register(e, NewHandler(service, eventRepo, constants.DefaultDurationMinutes), 1000, zerolog.Nop())

	return &testServer{e: e, clock: clock}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func (s *testServer) create(t *testing.T, body string) dto.TaskResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/tasks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[dto.TaskResponse](t, rec)
}

func TestHandler_CreateAndList(t *testing.T) {
	s := setupServer(t)

	task := s.create(t, `{"name":"Write report","duration_minutes":2}`)
	if task.TimeRemainingSeconds != 120 || task.TimeRemaining != "02:00" || task.State != constants.StateIdle {
		t.Errorf("unexpected created task: %+v", task)
	}

	defaulted := s.create(t, `{"name":"Quick"}`)
	if defaulted.DurationMinutes != constants.DefaultDurationMinutes || defaulted.Index != 1 {
		t.Errorf("expected default duration at index 1, got %+v", defaulted)
	}

	rec := s.do(t, http.MethodGet, "/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decode[dto.ListTasksResponse](t, rec)
	if list.Count != 2 || list.TotalTimeSpent != "00:00:00" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestHandler_CreateIgnoresInvalidSubmission(t *testing.T) {
	s := setupServer(t)

	for _, body := range []string{
		`{"name":"   ","duration_minutes":5}`,
		`{"name":"x","duration_minutes":0}`,
		`{"name":"x","duration_minutes":-2}`,
		`{"name":"x","duration_minutes":153722867280912931}`,
		`{"name":"x","duration_minutes":9223372036854775807}`,
	} {
		if rec := s.do(t, http.MethodPost, "/tasks", body); rec.Code != http.StatusNoContent {
			t.Errorf("%s: expected 204, got %d", body, rec.Code)
		}
	}

	if rec := s.do(t, http.MethodPost, "/tasks", `{"name":`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON: expected 400, got %d", rec.Code)
	}

	list := decode[dto.ListTasksResponse](t, s.do(t, http.MethodGet, "/tasks", ""))
	if list.Count != 0 {
		t.Errorf("expected no tasks, got %d", list.Count)
	}
}

func TestHandler_ToggleTickAndComplete(t *testing.T) {
	s := setupServer(t)
	task := s.create(t, `{"name":"Write report","duration_minutes":2}`)

	rec := s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	running := decode[dto.TaskResponse](t, rec)
	if running.State != constants.StateRunning || !running.HasTimer {
		t.Errorf("expected running with timer, got %+v", running)
	}

	s.clock.Tick(65)

	got := decode[dto.TaskResponse](t, s.do(t, http.MethodGet, "/tasks/"+task.ID, ""))
	if got.TimeRemaining != "00:55" {
		t.Errorf("expected 00:55 remaining, got %s", got.TimeRemaining)
	}

	summary := decode[dto.SummaryResponse](t, s.do(t, http.MethodGet, "/summary", ""))
	if summary.TotalTimeSpent != "00:01:05" || summary.ActiveCount != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	done := decode[dto.TaskResponse](t, s.do(t, http.MethodPost, "/tasks/"+task.ID+"/complete", ""))
	if done.State != constants.StateComplete || done.IsActive || done.HasTimer {
		t.Errorf("expected completed task, got %+v", done)
	}

	again := decode[dto.TaskResponse](t, s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", ""))
	if again.State != constants.StateComplete {
		t.Errorf("toggle on complete must be a no-op, got %+v", again)
	}
}

func TestHandler_DeleteByIDAndIndex(t *testing.T) {
	s := setupServer(t)
	a := s.create(t, `{"name":"A","duration_minutes":1}`)
	s.create(t, `{"name":"B","duration_minutes":1}`)
	c := s.create(t, `{"name":"C","duration_minutes":1}`)

	s.do(t, http.MethodPost, "/tasks/"+a.ID+"/toggle", "")

	if rec := s.do(t, http.MethodDelete, "/tasks/"+a.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if s.clock.Len() != 0 {
		t.Errorf("expected deleted task's tick cancelled, got %d entries", s.clock.Len())
	}

	if rec := s.do(t, http.MethodDelete, "/tasks?index=0", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	list := decode[dto.ListTasksResponse](t, s.do(t, http.MethodGet, "/tasks", ""))
	if list.Count != 1 || list.Tasks[0].ID != c.ID || list.Tasks[0].Index != 0 {
		t.Errorf("unexpected remaining tasks: %+v", list)
	}

	tests := []struct {
		target string
		want   int
	}{
		{"/tasks?index=7", http.StatusNotFound},
		{"/tasks?index=-1", http.StatusBadRequest},
		{"/tasks?index=abc", http.StatusBadRequest},
		{"/tasks", http.StatusBadRequest},
		{"/tasks/" + a.ID, http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := s.do(t, http.MethodDelete, tt.target, ""); rec.Code != tt.want {
			t.Errorf("DELETE %s: expected %d, got %d", tt.target, tt.want, rec.Code)
		}
	}
}

func TestHandler_UnknownTask(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodPost, "/tasks/nope/toggle", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decode[dto.ErrorResponse](t, rec); body.Message != "task not found" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestHandler_ListEvents(t *testing.T) {
	s := setupServer(t)
	task := s.create(t, `{"name":"Journal","duration_minutes":1}`)
	s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", "")
	s.clock.Tick(60)

	rec := s.do(t, http.MethodGet, "/events?limit=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode[struct {
		Count  int `json:"count"`
		Events []struct {
			Type constants.EventType `json:"type"`
		} `json:"events"`
	}](t, rec)

	if body.Count != 3 {
		t.Fatalf("expected 3 events, got %d", body.Count)
	}

	seen := map[constants.EventType]bool{}
	for _, e := range body.Events {
		seen[e.Type] = true
	}
	for _, want := range []constants.EventType{constants.EventTaskAdded, constants.EventTimerStarted, constants.EventTaskCompleted} {
		if !seen[want] {
			t.Errorf("missing %s event in %+v", want, body.Events)
		}
	}

	if rec := s.do(t, http.MethodGet, "/events?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for limit=0, got %d", rec.Code)
	}
}

func TestHandler_ListTaskEvents(t *testing.T) {
	s := setupServer(t)
	task := s.create(t, `{"name":"History","duration_minutes":1}`)
	s.create(t, `{"name":"Other","duration_minutes":1}`)

	s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", "")
	s.clock.Tick(20)
	s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", "")

	list := decode[dto.ListTasksResponse](t, s.do(t, http.MethodGet, "/tasks", ""))
	if list.TotalTimeSpent != "00:00:20" {
		t.Errorf("expected 00:00:20 spent, got %s", list.TotalTimeSpent)
	}

	if rec := s.do(t, http.MethodDelete, "/tasks/"+task.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/tasks/"+task.ID+"/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode[struct {
		Count  int `json:"count"`
		Events []struct {
			Type             constants.EventType `json:"type"`
			TaskID           string              `json:"task_id"`
			RemainingSeconds int                 `json:"remaining_seconds"`
		} `json:"events"`
	}](t, rec)

	want := []constants.EventType{
		constants.EventTaskAdded,
		constants.EventTimerStarted,
		constants.EventTimerPaused,
		constants.EventTaskDeleted,
	}
	if body.Count != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), body.Events)
	}
	for i, e := range body.Events {
		if e.Type != want[i] || e.TaskID != task.ID {
			t.Errorf("event %d: expected %s for %s, got %+v", i, want[i], task.ID, e)
		}
	}
	if body.Events[2].RemainingSeconds != 40 {
		t.Errorf("expected pause at 40s remaining, got %d", body.Events[2].RemainingSeconds)
	}

	empty := decode[struct {
		Count int `json:"count"`
	}](t, s.do(t, http.MethodGet, "/tasks/unknown/events", ""))
	if empty.Count != 0 {
		t.Errorf("expected no events for an unknown task, got %d", empty.Count)
	}
}
