// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmarchetti/citazioni/auth"
	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/maintenance"
	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/middleware"
	"github.com/dmarchetti/citazioni/models"
	"github.com/dmarchetti/citazioni/session"
)

type AdminHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *session.Store
	maint    *maintenance.State
	metrics  *metrics.Metrics
}

func NewAdminHandler(conn *sql.DB, cfg cliparse.Config, sessions *session.Store, maint *maintenance.State, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{db: conn, cfg: cfg, sessions: sessions, maint: maint, metrics: m}
}

type loginView struct {
	Error string
}

// LoginForm handles GET /admin
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Validate(session.FromRequest(r)) {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, loginTmpl, loginView{})
}

// Login handles POST /admin
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, loginTmpl, loginView{Error: "Richiesta non valida"})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if err := auth.VerifyAdminCredentials(username, password, h.cfg.Admin.Username, h.cfg.Admin.Password); err != nil {
		slog.Warn("admin login failed", "username", username, "remote", middleware.GetClientIP(r))
		render(w, http.StatusUnauthorized, loginTmpl, loginView{Error: "Credenziali non valide"})
		return
	}

	id := h.sessions.Create()
	session.SetCookie(w, id)
	slog.Info("admin logged in", "remote", middleware.GetClientIP(r))

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout handles GET /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(session.FromRequest(r))
	session.ClearCookie(w)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Dashboard handles GET /admin/dashboard with query params search,
// filter_status and page.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	query := models.ListingQuery{
		Search:       strings.TrimSpace(r.URL.Query().Get("search")),
		FilterStatus: r.URL.Query().Get("filter_status"),
		Page:         1,
	}
	if query.FilterStatus == "" {
		query.FilterStatus = models.FilterAll
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		query.Page = p
	}

	listing, err := ListQuotes(h.db, h.cfg.DatabaseType, query)
	if err != nil {
		slog.Error("failed to build quote listing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	pending, err := listPending(h.db, h.cfg.DatabaseType)
	if err != nil {
		slog.Error("failed to list pending submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	enabled, message := h.maint.Enabled()

	render(w, http.StatusOK, dashboardTmpl, models.DashboardData{
		Listing:      listing,
		Pending:      pending,
		Search:       query.Search,
		FilterStatus: query.FilterStatus,
		Maintenance:  enabled,
		MaintMessage: message,
	})
}

// ToggleMaintenance handles POST /admin/toggle_maintenance with form
// fields action (enable|disable) and an optional message.
func (h *AdminHandler) ToggleMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}

	action := r.FormValue("action")
	if action != "enable" && action != "disable" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "action deve essere enable o disable")
		return
	}

	if err := h.maint.Set(action == "enable", r.FormValue("message")); err != nil {
		slog.Error("failed to persist maintenance state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Impossibile salvare lo stato di manutenzione")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("maintenance_" + action).Inc()
	slog.Info("maintenance toggled", "action", action)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}
