// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines all HTTP routes using Go 1.22+ routing.

# Pipeline

Every request passes the maintenance gate before reaching the mux; while
the gate is closed only /admin, /static/, /health and /metrics are served.
Admin operations additionally pass RequireSession.

# Routes

Public:

	GET  /            → redirect to the static front page
	GET  /api/quotes  → validated quotes as JSON
	POST /submit      → new submission (form fields nome, cognome, frase, email)
	GET  /conferma    → confirmation link target
	GET  /static/…    → static assets

Admin:

	GET  /admin                      → login form
	POST /admin                      → login
	GET  /admin/logout               → logout
	GET  /admin/dashboard            → listing + pending (session)
	POST /admin/toggle_maintenance   → maintenance flag (session)
	POST /admin/approve/{id}         → approve pending (session)
	POST /admin/reject/{id}          → reject pending (session)
	POST /admin/quotes/add           → add quote (session)
	POST /admin/quotes/edit/{id}     → edit quote (session)
	POST /admin/quotes/delete/{id}   → delete quote (session)

Operational:

	GET /health   → liveness probe
	GET /metrics  → Prometheus registry
*/
package router
