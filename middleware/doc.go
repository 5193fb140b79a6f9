// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

WithLogging wraps a handler with started/completed slog lines, tagged with
a per-request ULID and the captured status code:

	mux.HandleFunc("POST /submit", middleware.WithLogging(h.Submit))

# Admin Gate

RequireSession enforces the admin session cookie. Browsers (Accept:
text/html) are redirected to the login form at /admin; other clients get
401 {"error": ...}:

	mux.HandleFunc("GET /admin/dashboard", middleware.WithLogging(
		middleware.RequireSession(sessions, h.Dashboard)))

# Responses

JSONResponse and ErrorResponse write JSON bodies; ErrorResponse uses the
{"error": message} shape every error surface of the API shares.
*/
package middleware
