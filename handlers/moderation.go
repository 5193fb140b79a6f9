// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/middleware"
)

type ModerationHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewModerationHandler(conn *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *ModerationHandler {
	return &ModerationHandler{db: conn, cfg: cfg, metrics: m}
}

// Approve handles POST /admin/approve/{id}: publish a pending submission
// without waiting for email confirmation. Insert and delete commit
// together or not at all; approving an id that is already resolved fails
// with 404 instead of silently succeeding, so a retried form post cannot
// publish twice.
func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var fullName, text string
	err = tx.QueryRow(db.Rebind(`
		SELECT full_name, text FROM pending_submission WHERE id = ?
	`, h.cfg.DatabaseType), id).Scan(&fullName, &text)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Citazione in attesa non trovata")
		return
	}
	if err != nil {
		slog.Error("failed to query pending submission", "pending_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(db.Rebind(`
		INSERT INTO quotes (text, author, validated, created_at)
		VALUES (?, ?, 1, ?)
	`, h.cfg.DatabaseType), text, fullName, time.Now())
	if err != nil {
		slog.Error("failed to insert approved quote", "pending_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	res, err := tx.Exec(db.Rebind(`
		DELETE FROM pending_submission WHERE id = ?
	`, h.cfg.DatabaseType), id)
	if err != nil {
		slog.Error("failed to delete pending submission", "pending_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Citazione in attesa non trovata")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit approval", "pending_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("approve").Inc()
	slog.Info("pending submission approved", "pending_id", id, "author", fullName)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Reject handles POST /admin/reject/{id}: drop a pending submission.
// Rejecting an id that no longer exists fails with 404.
func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(db.Rebind(`
		DELETE FROM pending_submission WHERE id = ?
	`, h.cfg.DatabaseType), id)
	if err != nil {
		slog.Error("failed to reject pending submission", "pending_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Citazione in attesa non trovata")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("reject").Inc()
	slog.Info("pending submission rejected", "pending_id", id)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Add handles POST /admin/quotes/add: direct insert by the admin, with a
// caller-chosen validation flag.
func (h *ModerationHandler) Add(w http.ResponseWriter, r *http.Request) {
	text, author, validated, ok := quoteForm(w, r)
	if !ok {
		return
	}

	_, err := h.db.Exec(db.Rebind(`
		INSERT INTO quotes (text, author, validated, created_at)
		VALUES (?, ?, ?, ?)
	`, h.cfg.DatabaseType), text, author, validated, time.Now())
	if err != nil {
		slog.Error("failed to add quote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("add").Inc()
	slog.Info("quote added", "author", author, "validated", validated)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Edit handles POST /admin/quotes/edit/{id}: update text, author and the
// validation flag together.
func (h *ModerationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	text, author, validated, ok := quoteForm(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(db.Rebind(`
		UPDATE quotes SET text = ?, author = ?, validated = ? WHERE id = ?
	`, h.cfg.DatabaseType), text, author, validated, id)
	if err != nil {
		slog.Error("failed to edit quote", "quote_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Citazione non trovata")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("edit").Inc()
	slog.Info("quote edited", "quote_id", id)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Delete handles POST /admin/quotes/delete/{id}
func (h *ModerationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(db.Rebind(`
		DELETE FROM quotes WHERE id = ?
	`, h.cfg.DatabaseType), id)
	if err != nil {
		slog.Error("failed to delete quote", "quote_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Citazione non trovata")
		return
	}

	h.metrics.ModerationActions.WithLabelValues("delete").Inc()
	slog.Info("quote deleted", "quote_id", id)

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// pathID extracts the numeric {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id non valido")
		return 0, false
	}
	return id, true
}

// quoteForm parses and validates the add/edit form fields.
func quoteForm(w http.ResponseWriter, r *http.Request) (text, author string, validated int, ok bool) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Richiesta non valida")
		return "", "", 0, false
	}

	text = strings.TrimSpace(r.FormValue("text"))
	author = strings.TrimSpace(r.FormValue("author"))
	if text == "" || author == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Testo e autore sono obbligatori")
		return "", "", 0, false
	}

	switch r.FormValue("validated") {
	case "1", "true", "on":
		validated = 1
	}
	return text, author, validated, true
}
