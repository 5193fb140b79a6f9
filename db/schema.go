// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := schemaSQLite
	if dbType == "postgres" {
		schema = schemaPostgres
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The quotes table keeps the layout of the original site database so an
// existing quotes.db file keeps working; validated is stored as 0/1.
const schemaSQLite = `
-- Published quotes
CREATE TABLE IF NOT EXISTS quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    author TEXT NOT NULL,
    validated INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_validated ON quotes(validated);

-- Submissions awaiting email confirmation
CREATE TABLE IF NOT EXISTS pending_submission (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name TEXT NOT NULL,
    text TEXT NOT NULL,
    email TEXT NOT NULL,
    confirmed INTEGER NOT NULL DEFAULT 0,
    token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_submission_token ON pending_submission(token);
`

const schemaPostgres = `
-- Published quotes
CREATE TABLE IF NOT EXISTS quotes (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL,
    author TEXT NOT NULL,
    validated INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_validated ON quotes(validated);

-- Submissions awaiting email confirmation
CREATE TABLE IF NOT EXISTS pending_submission (
    id BIGSERIAL PRIMARY KEY,
    full_name TEXT NOT NULL,
    text TEXT NOT NULL,
    email TEXT NOT NULL,
    confirmed INTEGER NOT NULL DEFAULT 0,
    token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pending_submission_token ON pending_submission(token);
`
