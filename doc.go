// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Citazioni server.

Citazioni is a small quote-collection site: visitors submit a quote with
their name and email, confirm it through a single-use emailed link, and an
administrator moderates what gets published.

# Starting the Server

The server reads its settings from a .env file, the environment, or CLI
flags:

	SITE_URL=https://citazioni.example ADMIN_USERNAME=admin ADMIN_PASSWORD=… go run .

Or in development, without an SMTP account:

	go run . -no-mail -data-dir ./data

# Configuration

Required settings:

  - SITE_URL: public base URL used in confirmation links
  - ADMIN_USERNAME / ADMIN_PASSWORD: the shared admin credential
    (ADMIN_PASSWORD may be an Argon2id PHC string)
  - EMAIL_HOST / EMAIL_USER / EMAIL_PASSWORD / EMAIL_FROM: SMTP account
    (unless -no-mail)

Optional settings:

  - PORT (-p): server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string, or the SQLite file path
  - DATA_DIR (-data-dir): maintenance.json and submission exports
  - EMAIL_PORT: SMTP port (default: 587)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (submission, confirmation, admin, moderation)
  - router: route definitions using Go 1.22+ routing, wrapped by the maintenance gate
  - middleware: request logging, session gate, JSON helpers
  - models: domain types and the error taxonomy
  - auth: confirmation tokens and admin credential checks
  - session: in-memory admin sessions
  - mailer: confirmation email delivery (SMTP or log-only)
  - maintenance: persisted site-wide maintenance flag
  - export: best-effort per-submission text artifacts
  - metrics: Prometheus counters
  - db: connection, schema, placeholder rebinding
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
