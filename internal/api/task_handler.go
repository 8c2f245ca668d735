package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	store           store.TaskStore
	legacyResponses bool
	logger          *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
//
// With legacyResponses set, a missing task is reported as HTTP 200 with a
// "Task not found" message and update/delete of a missing task still report
// success. Otherwise those cases respond with 404.
func NewTaskHandler(taskStore store.TaskStore, legacyResponses bool, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		store:           taskStore,
		legacyResponses: legacyResponses,
		logger:          logger.With(slog.String("component", "task_handler")),
	}
}

func (h *TaskHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// InitSchema handles GET /api. A schema failure is logged and the readiness
// text is returned regardless.
func (h *TaskHandler) InitSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.store.EnsureSchema(r.Context()); err != nil {
		h.log(r).Error("failed to ensure tasks schema", slog.Any("error", err))
	}
	shared.RespondWithText(w, r, http.StatusOK, SchemaReadyMessage)
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToLegacyResponse(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	task, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondNotFound(w, r, id)
			return
		}
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks and echoes the stored fields.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}

	task, err := h.store.Create(r.Context(), fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.log(r).Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task.Fields())
}

// UpdateTask handles PUT /api/tasks/{id}. Both fields are replaced.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}

	if err := h.store.Update(r.Context(), id, fields); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		if !h.legacyResponses {
			h.respondNotFound(w, r, id)
			return
		}
		h.log(r).Debug("update matched no task", slog.Int64("task_id", id))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: TaskUpdatedMessage})
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		if !h.legacyResponses {
			h.respondNotFound(w, r, id)
			return
		}
		h.log(r).Debug("delete matched no task", slog.Int64("task_id", id))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: TaskDeletedMessage})
}

// Options handles OPTIONS preflight requests.
func (h *TaskHandler) Options(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		h.log(r).Debug("invalid task id in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) decodeFields(w http.ResponseWriter, r *http.Request) (domain.TaskFields, bool) {
	var fields domain.TaskFields
	if err := shared.DecodeJSON(r, &fields); err != nil {
		if isBodyTooLarge(err) {
			HandleAPIError(w, r, err, "")
			return fields, false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return fields, false
	}
	if err := shared.ValidateRequest(&fields); err != nil {
		HandleAPIError(w, r, err, "")
		return fields, false
	}
	return fields, true
}

func (h *TaskHandler) respondNotFound(w http.ResponseWriter, r *http.Request, id int64) {
	h.log(r).Debug("task not found", slog.Int64("task_id", id))
	status := http.StatusNotFound
	if h.legacyResponses {
		status = http.StatusOK
	}
	shared.RespondWithJSON(w, r, status, MessageResponse{Message: TaskNotFoundMessage})
}
