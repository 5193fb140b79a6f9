// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the Citazioni site.

# Handler Types

Each handler is a struct with database and config dependencies:

  - QuotesHandler: public quote listing and the front-page redirect
  - SubmissionHandler: visitor submissions and token confirmation
  - AdminHandler: login, logout, dashboard, maintenance toggle
  - ModerationHandler: approve/reject pendings, add/edit/delete quotes

Handlers are created via constructor functions that accept *sql.DB and
Config plus their collaborators (mailer.Sender, session.Store, ...).

# Submission Lifecycle

A quote submitted through POST /submit is stored as a pending_submission
row with a fresh single-use token; the confirmation email carries
{SITE_URL}/conferma?token={token}. Visiting the link moves the data into
the quotes table (validated = 1) and consumes the pending row in one
transaction, so a token can never publish twice.

	POST /submit            → Submit (store pending, send email)
	GET  /conferma?token=…  → Confirm (publish + consume, exactly once)

# Moderation

All moderation routes require the admin session cookie and redirect to
the dashboard on success:

	POST /admin/approve/{id}       → Approve (publish without confirmation)
	POST /admin/reject/{id}        → Reject
	POST /admin/quotes/add         → Add
	POST /admin/quotes/edit/{id}   → Edit
	POST /admin/quotes/delete/{id} → Delete

Approve and Reject fail with 404 on an id that is already resolved;
retried form posts cannot publish or delete twice.

# Listing

ListQuotes implements the dashboard query: case-insensitive substring
search over text and author, validation filter, newest first, pages of
ten rows:

	result, err := handlers.ListQuotes(db, cfg.DatabaseType, query)
*/
package handlers
