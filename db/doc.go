// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Backends

Open selects the driver from Config.DatabaseType:

  - sqlite (default): modernc.org/sqlite against a local quotes.db file,
    limited to one open connection.
  - postgres: lib/pq against Config.DatabaseURL.

# Placeholders

Queries are written with ? placeholders. Rebind converts them to $1..$N
when the postgres backend is active:

	row := conn.QueryRow(db.Rebind("SELECT id FROM quotes WHERE id = ?", cfg.DatabaseType), id)

# Schema

Two tables back the submission lifecycle:

  - quotes: published records; validated is 0/1 and gates public visibility.
  - pending_submission: records awaiting email confirmation, keyed by a
    UNIQUE single-use token.

CreateSchema is idempotent and runs at startup.
*/
package db
