// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/middleware"
	"github.com/dmarchetti/citazioni/models"
)

type QuotesHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuotesHandler(conn *sql.DB, cfg cliparse.Config) *QuotesHandler {
	return &QuotesHandler{db: conn, cfg: cfg}
}

// Root handles GET / and sends visitors to the static front page.
func (h *QuotesHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusFound)
}

// GetQuotes handles GET /api/quotes: every validated quote, oldest first.
// Only rows with validated = 1 are ever exposed here.
func (h *QuotesHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	// The original site shipped without migrations, so the handler probes
	// for the table and reports a schema problem explicitly.
	exists, err := quotesTableExists(h.db, h.cfg.DatabaseType)
	if err != nil {
		slog.Error("failed to probe quotes table", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		slog.Error("quotes table missing from database")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Table 'quotes' non trovata")
		return
	}

	rows, err := h.db.Query(db.Rebind(`
		SELECT id, text, author FROM quotes WHERE validated = 1 ORDER BY id
	`, h.cfg.DatabaseType))
	if err != nil {
		slog.Error("failed to query quotes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	quotes := []models.PublicQuote{}
	for rows.Next() {
		var q models.PublicQuote
		if err := rows.Scan(&q.ID, &q.Text, &q.Author); err != nil {
			slog.Error("failed to scan quote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate quotes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, quotes)
}

func quotesTableExists(conn *sql.DB, dbType string) (bool, error) {
	var name string
	var err error
	if dbType == "postgres" {
		err = conn.QueryRow(`SELECT table_name FROM information_schema.tables WHERE table_name = 'quotes'`).Scan(&name)
	} else {
		err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'quotes'`).Scan(&name)
	}
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
