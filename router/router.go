// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/handlers"
	"github.com/dmarchetti/citazioni/mailer"
	"github.com/dmarchetti/citazioni/maintenance"
	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/middleware"
	"github.com/dmarchetti/citazioni/session"
)

// Deps are the long-lived collaborators shared by the handlers.
type Deps struct {
	Sender      mailer.Sender
	Sessions    *session.Store
	Maintenance *maintenance.State
	Metrics     *metrics.Metrics
	StaticDir   string
}

// New builds the full request pipeline: the maintenance gate wraps the
// mux, logging wraps each handler, RequireSession wraps the admin routes.
func New(db *sql.DB, cfg cliparse.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	quotesHandler := handlers.NewQuotesHandler(db, cfg)
	submissionHandler := handlers.NewSubmissionHandler(db, cfg, deps.Sender, deps.Metrics)
	adminHandler := handlers.NewAdminHandler(db, cfg, deps.Sessions, deps.Maintenance, deps.Metrics)
	moderationHandler := handlers.NewModerationHandler(db, cfg, deps.Metrics)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(deps.Sessions, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// Public site
	mux.HandleFunc("GET /{$}", middleware.WithLogging(quotesHandler.Root))
	mux.HandleFunc("GET /api/quotes", middleware.WithLogging(quotesHandler.GetQuotes))
	mux.HandleFunc("POST /submit", middleware.WithLogging(submissionHandler.Submit))
	mux.HandleFunc("GET /conferma", middleware.WithLogging(submissionHandler.Confirm))

	// Static assets
	if deps.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}

	// Admin session management
	mux.HandleFunc("GET /admin", middleware.WithLogging(adminHandler.LoginForm))
	mux.HandleFunc("POST /admin", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/logout", middleware.WithLogging(adminHandler.Logout))

	// Admin operations (session required)
	mux.HandleFunc("GET /admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/toggle_maintenance", admin(adminHandler.ToggleMaintenance))
	mux.HandleFunc("POST /admin/approve/{id}", admin(moderationHandler.Approve))
	mux.HandleFunc("POST /admin/reject/{id}", admin(moderationHandler.Reject))
	mux.HandleFunc("POST /admin/quotes/add", admin(moderationHandler.Add))
	mux.HandleFunc("POST /admin/quotes/edit/{id}", admin(moderationHandler.Edit))
	mux.HandleFunc("POST /admin/quotes/delete/{id}", admin(moderationHandler.Delete))

	return maintenance.Middleware(deps.Maintenance, deps.Metrics.MaintenanceRejections, mux)
}
