package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/board-api/internal/api"
	apiMiddleware "github.com/phrazzld/board-api/internal/api/middleware"
	"github.com/phrazzld/board-api/internal/service"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	return newRouter(app.columnService, app.taskService, app.logger)
}

// newRouter registers the board routes on a chi router.
func newRouter(columns service.ColumnService, tasks service.TaskService, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(logger))

	columnHandler := api.NewColumnHandler(columns, tasks, logger)
	taskHandler := api.NewTaskHandler(tasks, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/columns", func(r chi.Router) {
			r.Post("/", columnHandler.CreateColumn)
			r.Get("/", columnHandler.ListColumns)
			r.Get("/{id}", columnHandler.GetColumn)
			r.Get("/{id}/tasks", columnHandler.ListColumnTasks)
			r.Put("/{id}", columnHandler.UpdateColumn)
			r.Delete("/{id}", columnHandler.DeleteColumn)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Patch("/reorder", taskHandler.ReorderTasks)
			r.Patch("/bulk-update", taskHandler.BulkUpdateTasks)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
			r.Put("/{id}/completed", taskHandler.MarkTaskAsCompleted)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
