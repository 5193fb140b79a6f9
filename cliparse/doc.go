// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p         Server port
	-d         Database URL or SQLite path
	-t         Database type (sqlite or postgres)
	-data-dir  Directory for maintenance.json and submission exports
	-no-mail   Log confirmation emails instead of sending them

# Environment Variables

Flags fall back to environment variables (CLI flags take precedence):

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	DATA_DIR       → -data-dir

The remaining settings are environment-only and are read through
envconfig at startup:

	SITE_URL        Public base URL embedded in confirmation links (required)
	ADMIN_USERNAME  Admin login name (required)
	ADMIN_PASSWORD  Admin secret, plaintext or Argon2id PHC string (required)
	EMAIL_HOST      SMTP server host
	EMAIL_PORT      SMTP server port (default 587)
	EMAIL_USER      SMTP username
	EMAIL_PASSWORD  SMTP password
	EMAIL_FROM      From address on confirmation mail

SMTP settings are required unless -no-mail is set. A .env file in the
working directory is loaded by main before parsing.

# Defaults

  - Port: 5000
  - DatabaseType: sqlite
  - DatabaseURL (sqlite): <data-dir>/quotes.db
*/
package cliparse
