package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.API.CORSAllowedOrigins))
	r.Use(apiMiddleware.BodyLimit(app.config.API.MaxBodyBytes))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	taskHandler := api.NewTaskHandler(app.taskStore, app.config.API.LegacyResponses, app.logger)

	// CORS preflights pass through to the router, so every API route answers OPTIONS.
	r.Get("/api", taskHandler.InitSchema)
	r.Options("/api", taskHandler.Options)

	r.Get("/tasks", taskHandler.ListTasks)
	r.Post("/tasks", taskHandler.CreateTask)
	r.Options("/tasks", taskHandler.Options)

	r.Options("/api/tasks", taskHandler.Options)

	r.Get("/api/tasks/{id}", taskHandler.GetTask)
	r.Put("/api/tasks/{id}", taskHandler.UpdateTask)
	r.Delete("/api/tasks/{id}", taskHandler.DeleteTask)
	r.Options("/api/tasks/{id}", taskHandler.Options)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
