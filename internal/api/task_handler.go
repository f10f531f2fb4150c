package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/api/shared"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task service cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
// The referenced column must exist.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), service.CreateTaskParams{
		Description: req.Description,
		Owner:       req.Owner,
		ColumnID:    uuid.MustParse(req.ColumnID),
		Order:       *req.Order,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}

// ReorderTasks handles PATCH /api/tasks/reorder
func (h *TaskHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req ReorderTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	columnID := uuid.MustParse(req.ColumnID)
	entries := make([]service.ReorderEntry, len(req.Tasks))
	for i, item := range req.Tasks {
		entries[i] = service.ReorderEntry{TaskID: uuid.MustParse(item.ID), Order: *item.Order}
	}

	if err := h.tasks.ReorderTasks(r.Context(), columnID, entries); err != nil {
		HandleAPIError(w, r, err, "Failed to reorder tasks")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("tasks reordered",
		slog.String("column_id", columnID.String()),
		slog.Int("task_count", len(entries)))
	shared.RespondWithMessage(w, r, http.StatusOK, "Tasks reordered successfully")
}

// BulkUpdateTasks handles PATCH /api/tasks/bulk-update
func (h *TaskHandler) BulkUpdateTasks(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateTasksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ids := make([]uuid.UUID, len(req.TaskIDs))
	for i, raw := range req.TaskIDs {
		ids[i] = uuid.MustParse(raw)
	}

	if err := h.tasks.BulkUpdateTasks(r.Context(), ids, uuid.MustParse(req.ColumnID)); err != nil {
		HandleAPIError(w, r, err, "Failed to update tasks")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Tasks updated successfully")
}

// MarkTaskAsCompleted handles PUT /api/tasks/{id}/completed
func (h *TaskHandler) MarkTaskAsCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.MarkTaskAsCompleted(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}
