// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmarchetti/citazioni/auth"
	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/export"
	"github.com/dmarchetti/citazioni/mailer"
	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/middleware"
	"github.com/dmarchetti/citazioni/models"
)

type SubmissionHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	sender  mailer.Sender
	metrics *metrics.Metrics
}

func NewSubmissionHandler(conn *sql.DB, cfg cliparse.Config, sender mailer.Sender, m *metrics.Metrics) *SubmissionHandler {
	return &SubmissionHandler{db: conn, cfg: cfg, sender: sender, metrics: m}
}

// Submit handles POST /submit. The submission is committed before the email
// attempt: a delivery failure is reported to the caller but never rolls the
// record back.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Richiesta non valida")
		return
	}

	nome := strings.TrimSpace(r.FormValue("nome"))
	cognome := strings.TrimSpace(r.FormValue("cognome"))
	frase := strings.TrimSpace(r.FormValue("frase"))
	email := strings.TrimSpace(r.FormValue("email"))

	if nome == "" || cognome == "" || frase == "" || email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Tutti i campi sono obbligatori")
		return
	}

	fullName := nome + " " + cognome

	token, err := auth.GenerateToken()
	if err != nil {
		slog.Error("failed to generate confirmation token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Errore interno")
		return
	}

	sub := models.PendingSubmission{
		FullName:  fullName,
		Text:      frase,
		Email:     email,
		Confirmed: models.StateUnconfirmed,
		Token:     token,
		CreatedAt: time.Now(),
	}

	sub.ID, err = h.insertPending(sub)
	if err != nil {
		if models.IsConflict(err) {
			// 256-bit tokens colliding means something is deeply wrong;
			// fail loudly rather than overwrite.
			slog.Error("confirmation token collision", "error", err)
		} else {
			slog.Error("failed to insert pending submission", "error", err)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Errore nel salvataggio della citazione")
		return
	}

	h.metrics.Submissions.Inc()
	slog.Info("quote submitted",
		"pending_id", sub.ID,
		"author", fullName,
		"remote", middleware.GetClientIP(r),
	)

	// Best-effort denormalized dump; never affects the outcome.
	if n, err := export.Write(h.cfg.DataDir, sub); err != nil {
		slog.Warn("submission export failed", "pending_id", sub.ID, "error", err)
	} else {
		slog.Debug("submission exported", "pending_id", sub.ID, "size", humanize.Bytes(uint64(n)))
	}

	if err := h.sender.SendConfirmation(email, fullName, token); err != nil {
		slog.Error("confirmation mail failed", "pending_id", sub.ID, "error", fmt.Errorf("%w: %v", models.ErrNotification, err))
		middleware.JSONResponse(w, http.StatusInternalServerError, models.SubmitResponse{
			Success: false,
			Message: "Citazione salvata, ma l'invio dell'email di conferma non è riuscito.",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Success: true,
		Message: "Citazione inviata! Controlla la tua email per confermarla.",
	})
}

// insertPending stores the new row and returns its id. A UNIQUE violation on
// the token column surfaces as models.ErrConflict.
func (h *SubmissionHandler) insertPending(sub models.PendingSubmission) (int64, error) {
	const q = `
		INSERT INTO pending_submission (full_name, text, email, confirmed, token, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if h.cfg.DatabaseType == "postgres" {
		var id int64
		err := h.db.QueryRow(db.Rebind(q+" RETURNING id", h.cfg.DatabaseType),
			sub.FullName, sub.Text, sub.Email, sub.Confirmed, sub.Token, sub.CreatedAt).Scan(&id)
		if err != nil {
			return 0, classifyInsertErr(err)
		}
		return id, nil
	}

	res, err := h.db.Exec(q, sub.FullName, sub.Text, sub.Email, sub.Confirmed, sub.Token, sub.CreatedAt)
	if err != nil {
		return 0, classifyInsertErr(err)
	}
	return res.LastInsertId()
}

func classifyInsertErr(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", models.ErrConflict, err)
	}
	return err
}

// isUniqueViolation matches the constraint error text of both backends.
func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint"))
}
