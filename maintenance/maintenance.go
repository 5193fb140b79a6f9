// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package maintenance implements the site-wide maintenance gate: a
// persisted flag plus the middleware that short-circuits public requests
// while it is closed.
package maintenance

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// FileName is the on-disk record under the data directory.
const FileName = "maintenance.json"

// DefaultMessage is shown when maintenance is enabled with no message.
const DefaultMessage = "Il sito è temporaneamente in manutenzione. Torna più tardi!"

// persisted is the wire shape of the on-disk record.
type persisted struct {
	MaintenanceMode    bool   `json:"maintenanceMode"`
	MaintenanceMessage string `json:"maintenanceMessage"`
}

// State is the process-wide maintenance flag. Every change is written to
// disk before it takes effect, so the flag survives restarts.
type State struct {
	mu      sync.RWMutex
	path    string
	enabled bool
	message string
}

// Load reads the saved state from dataDir. A missing file means the gate
// is open.
func Load(dataDir string) (*State, error) {
	s := &State{path: filepath.Join(dataDir, FileName)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read maintenance state: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse maintenance state: %w", err)
	}

	s.enabled = p.MaintenanceMode
	s.message = p.MaintenanceMessage
	return s, nil
}

// Enabled returns the current flag and message.
func (s *State) Enabled() (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled, s.message
}

// Set flips the gate and persists the new state before applying it in
// memory. On a write failure the in-memory state is left unchanged.
func (s *State) Set(enabled bool, message string) error {
	if enabled && strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(persisted{
		MaintenanceMode:    enabled,
		MaintenanceMessage: message,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode maintenance state: %w", err)
	}

	// Write-and-rename so a crash mid-write never truncates the record.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write maintenance state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save maintenance state: %w", err)
	}

	s.enabled = enabled
	s.message = message
	return nil
}

// allowedPrefixes always pass through the gate: the admin must be able to
// reach the toggle, and the maintenance page still needs its assets.
var allowedPrefixes = []string{"/admin", "/static/", "/health", "/metrics"}

var unavailableTmpl = template.Must(template.New("maintenance").Parse(`<!DOCTYPE html>
<html lang="it">
<head><meta charset="utf-8"><title>Manutenzione</title><link rel="stylesheet" href="/static/style.css"></head>
<body>
<h1>Sito in manutenzione</h1>
<p>{{.}}</p>
</body>
</html>
`))

// Middleware short-circuits public requests with 503 while the gate is
// closed. rejections may be nil (tests).
func Middleware(s *State, rejections prometheus.Counter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enabled, message := s.Enabled()
		if enabled && !pathAllowed(r.URL.Path) {
			if rejections != nil {
				rejections.Inc()
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Retry-After", "3600")
			w.WriteHeader(http.StatusServiceUnavailable)
			unavailableTmpl.Execute(w, message)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func pathAllowed(path string) bool {
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
