package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/board-api/internal/api/shared"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/service"
)

// ColumnHandler handles column-related HTTP requests
type ColumnHandler struct {
	columns service.ColumnService
	tasks   service.TaskService
	logger  *slog.Logger
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columns service.ColumnService, tasks service.TaskService, logger *slog.Logger) *ColumnHandler {
	if columns == nil || tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("column and task services cannot be nil for ColumnHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ColumnHandler{
		columns: columns,
		tasks:   tasks,
		logger:  logger.With(slog.String("component", "column_handler")),
	}
}

// CreateColumn handles POST /api/columns
func (h *ColumnHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	var req ColumnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	column, err := h.columns.CreateColumn(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create column")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, columnToResponse(column))
}

// ListColumns handles GET /api/columns
func (h *ColumnHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.columns.ListColumns(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list columns")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnsToResponse(columns))
}

// GetColumn handles GET /api/columns/{id}
func (h *ColumnHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	column, err := h.columns.GetColumn(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get column")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// ListColumnTasks handles GET /api/columns/{id}/tasks.
// Tasks are returned sorted by order.
func (h *ColumnHandler) ListColumnTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.ListColumnTasks(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// UpdateColumn handles PUT /api/columns/{id}
func (h *ColumnHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ColumnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	column, err := h.columns.UpdateColumn(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update column")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, columnToResponse(column))
}

// DeleteColumn handles DELETE /api/columns/{id}
func (h *ColumnHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.columns.DeleteColumn(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete column")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("column deleted",
		slog.String("column_id", id.String()))
	shared.RespondWithMessage(w, r, http.StatusOK, "Column deleted successfully")
}
