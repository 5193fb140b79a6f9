// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types shared across the Citazioni server.

# Lifecycle

A visitor-submitted quote passes through two records:

  - PendingSubmission: created on POST /submit with a single-use token,
    removed when the token is confirmed or the admin resolves it.
  - Quote: the published record; only rows with Validated=true are exposed
    through the public API.

Confirming a token moves the data from the first record to the second in a
single transaction; the two never share an id or token afterwards.

# Errors

The sentinel errors in errors.go are the full failure taxonomy. Handlers
wrap them with context and classify with errors.Is:

	if models.IsNotFound(err) { ... 404 ... }
*/
package models
