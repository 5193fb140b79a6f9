// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Sentinel errors for the submission lifecycle. Callers classify failures
// with errors.Is and map them to HTTP responses; wrapping preserves the
// underlying cause for the logs.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("admin session required")
	ErrNotFound     = errors.New("not found")
	ErrMissingToken = errors.New("confirmation token missing")
	ErrInvalidToken = errors.New("confirmation token invalid or already used")
	ErrConflict     = errors.New("conflicting record")
	ErrStorage      = errors.New("storage failure")
	ErrNotification = errors.New("email delivery failed")
)

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err represents ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err represents ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
