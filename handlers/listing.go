// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmarchetti/citazioni/db"
	"github.com/dmarchetti/citazioni/models"
)

// ListQuotes builds one dashboard page over the published quotes:
// case-insensitive substring search on text and author, an optional
// validation filter, newest id first, fixed page size.
func ListQuotes(conn *sql.DB, dbType string, q models.ListingQuery) (models.ListingResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	var where []string
	var args []interface{}

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(text) LIKE ? OR LOWER(author) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	switch q.FilterStatus {
	case models.FilterValidated:
		where = append(where, "validated = 1")
	case models.FilterNotValidated:
		where = append(where, "validated = 0")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	err := conn.QueryRow(db.Rebind("SELECT COUNT(*) FROM quotes"+whereSQL, dbType), args...).Scan(&total)
	if err != nil {
		return models.ListingResult{}, fmt.Errorf("count quotes: %w", err)
	}

	totalPages := (total + models.PageSize - 1) / models.PageSize

	result := models.ListingResult{
		Quotes:     []models.QuoteRow{},
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}

	args = append(args, models.PageSize, (page-1)*models.PageSize)
	rows, err := conn.Query(db.Rebind(`
		SELECT id, text, author, validated, created_at FROM quotes`+whereSQL+`
		ORDER BY id DESC LIMIT ? OFFSET ?
	`, dbType), args...)
	if err != nil {
		return models.ListingResult{}, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.QuoteRow
		var validated int
		if err := rows.Scan(&row.ID, &row.Text, &row.Author, &validated, &row.CreatedAt); err != nil {
			return models.ListingResult{}, fmt.Errorf("scan quote: %w", err)
		}
		row.Validated = validated == 1
		row.SubmittedAgo = humanize.Time(row.CreatedAt)
		result.Quotes = append(result.Quotes, row)
	}
	if err := rows.Err(); err != nil {
		return models.ListingResult{}, fmt.Errorf("iterate quotes: %w", err)
	}

	return result, nil
}

// listPending returns every submission still awaiting confirmation,
// newest first, for the dashboard.
func listPending(conn *sql.DB, dbType string) ([]models.PendingSubmission, error) {
	rows, err := conn.Query(db.Rebind(`
		SELECT id, full_name, text, email, confirmed, created_at
		FROM pending_submission ORDER BY id DESC
	`, dbType))
	if err != nil {
		return nil, fmt.Errorf("query pending submissions: %w", err)
	}
	defer rows.Close()

	pending := []models.PendingSubmission{}
	for rows.Next() {
		var p models.PendingSubmission
		if err := rows.Scan(&p.ID, &p.FullName, &p.Text, &p.Email, &p.Confirmed, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending submission: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending submissions: %w", err)
	}

	return pending, nil
}
