// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/middleware"
)

type confirmView struct {
	Name   string
	Reason string
}

// Confirm handles GET /conferma?token=...
//
// The lookup and both row mutations run in one transaction: either the
// pending row is consumed and the published quote exists, or nothing
// changed. A second request with the same token finds no row and fails,
// which also resolves concurrent confirmations - the loser of the race
// deletes zero rows and rolls back.
func (h *SubmissionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.metrics.Confirmations.WithLabelValues("invalid").Inc()
		render(w, http.StatusBadRequest, confirmErrTmpl, confirmView{
			Reason: "Il link di conferma è incompleto: manca il token.",
		})
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		h.renderConfirmStorageError(w)
		return
	}
	defer tx.Rollback()

	var pendingID int64
	var fullName, text string
	err = tx.QueryRow(db.Rebind(`
		SELECT id, full_name, text FROM pending_submission WHERE token = ?
	`, h.cfg.DatabaseType), token).Scan(&pendingID, &fullName, &text)

	if err == sql.ErrNoRows {
		h.metrics.Confirmations.WithLabelValues("invalid").Inc()
		render(w, http.StatusNotFound, confirmErrTmpl, confirmView{
			Reason: "Link non valido o già utilizzato.",
		})
		return
	}
	if err != nil {
		slog.Error("failed to look up token", "error", err)
		h.renderConfirmStorageError(w)
		return
	}

	// Auto-publish: the confirmed submission goes straight to the public
	// list and the pending row is consumed.
	_, err = tx.Exec(db.Rebind(`
		INSERT INTO quotes (text, author, validated, created_at)
		VALUES (?, ?, 1, ?)
	`, h.cfg.DatabaseType), text, fullName, time.Now())
	if err != nil {
		slog.Error("failed to publish confirmed quote", "pending_id", pendingID, "error", err)
		h.renderConfirmStorageError(w)
		return
	}

	res, err := tx.Exec(db.Rebind(`
		DELETE FROM pending_submission WHERE id = ?
	`, h.cfg.DatabaseType), pendingID)
	if err != nil {
		slog.Error("failed to consume pending submission", "pending_id", pendingID, "error", err)
		h.renderConfirmStorageError(w)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// A concurrent confirmation got here first; our insert rolls back.
		h.metrics.Confirmations.WithLabelValues("invalid").Inc()
		render(w, http.StatusNotFound, confirmErrTmpl, confirmView{
			Reason: "Link non valido o già utilizzato.",
		})
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit confirmation", "pending_id", pendingID, "error", err)
		h.renderConfirmStorageError(w)
		return
	}

	h.metrics.Confirmations.WithLabelValues("ok").Inc()
	slog.Info("submission confirmed", "pending_id", pendingID, "author", fullName, "remote", middleware.GetClientIP(r))

	render(w, http.StatusOK, confirmOKTmpl, confirmView{Name: fullName})
}

func (h *SubmissionHandler) renderConfirmStorageError(w http.ResponseWriter) {
	h.metrics.Confirmations.WithLabelValues("error").Inc()
	render(w, http.StatusInternalServerError, confirmErrTmpl, confirmView{
		Reason: "Si è verificato un errore interno. Riprova più tardi.",
	})
}
