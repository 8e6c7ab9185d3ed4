package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nerrad567/recipe-manager/internal/auth"
)

// healthCheckTimeout bounds the database ping made by /api/health.
const healthCheckTimeout = 2 * time.Second

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Identity is optional here; gates below decide what anonymous callers may do.
		r.Use(s.identityMiddleware)

		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Post("/auth/login", s.handleLogin)
			r.Post("/auth/register", s.handleRegister)
		})

		// Administration
		r.Group(func(r chi.Router) {
			r.Use(s.requirePermission(auth.PermUserManage))
			r.Get("/users", s.handleListUsers)
			r.Delete("/users/{id}", s.handleDeleteUser)
		})
		r.With(s.requirePermission(auth.PermAuditRead)).Get("/audit-logs", s.handleListAuditLogs)

		// Profile (self or admin, checked by the user service)
		r.Group(func(r chi.Router) {
			r.Use(s.requirePermission(auth.PermProfile))
			r.Get("/users/{id}", s.handleGetUser)
			r.Put("/users/{id}", s.handleUpdateUser)
		})

		// Recipes and their children
		r.Group(func(r chi.Router) {
			r.Use(s.requirePermission(auth.PermRecipeRead))

			r.Get("/recipes", s.handleListRecipes)
			r.Get("/recipes/{id}", s.handleGetRecipe)
			r.Get("/recipes/{id}/components", s.handleListComponents)
			r.Get("/components/{id}", s.handleGetComponent)
			r.Get("/components/{id}/ingredients", s.handleListIngredients)
			r.Get("/components/{id}/steps", s.handleListSteps)

			r.Group(func(r chi.Router) {
				r.Use(s.requirePermission(auth.PermRecipeWrite))

				r.Post("/recipes", s.handleCreateRecipe)
				r.Put("/recipes/{id}", s.handleUpdateRecipe)
				r.Delete("/recipes/{id}", s.handleDeleteRecipe)
				r.Post("/recipes/{id}/components", s.handleAddComponent)

				r.Put("/components/{id}", s.handleUpdateComponent)
				r.Delete("/components/{id}", s.handleDeleteComponent)
				r.Post("/components/{id}/ingredients", s.handleAddIngredient)
				r.Post("/components/{id}/steps", s.handleAddStep)

				r.Delete("/ingredients/{id}", s.handleDeleteIngredient)
				r.Delete("/steps/{id}", s.handleDeleteStep)
			})
		})
	})

	return r
}

// handleHealth reports whether the database is reachable.
// The broker state is informational and never makes the service unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, dbState, code := "ok", "up", http.StatusOK
	if err := s.db.HealthCheck(ctx); err != nil {
		s.logger.Warn("database health check failed", "error", err)
		status, dbState, code = "unavailable", "down", http.StatusServiceUnavailable
	}

	body := map[string]any{
		"status":   status,
		"database": dbState,
		"version":  s.version,
	}
	if s.mqtt != nil {
		body["mqtt"] = s.mqtt.IsConnected()
	}

	writeJSON(w, code, body)
}
