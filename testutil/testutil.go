// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmarchetti/citazioni/cliparse"
	"github.com/dmarchetti/citazioni/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temp directory, so the suite needs no external server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	return cliparse.Config{
		Port:         5000,
		DatabaseType: "sqlite",
		DataDir:      t.TempDir(),
		SiteURL:      "http://testserver",
		NoMail:       true,
		Admin: cliparse.AdminConfig{
			Username: "admin",
			Password: "test-password",
		},
	}
}

// CreateTestQuote inserts a published quote and returns its ID.
func CreateTestQuote(t *testing.T, conn *sql.DB, text, author string, validated bool) int64 {
	t.Helper()

	v := 0
	if validated {
		v = 1
	}
	res, err := conn.Exec(`
		INSERT INTO quotes (text, author, validated, created_at)
		VALUES (?, ?, ?, ?)
	`, text, author, v, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

// CreateTestPending inserts an unconfirmed submission and returns its ID.
func CreateTestPending(t *testing.T, conn *sql.DB, fullName, text, email, token string) int64 {
	t.Helper()

	res, err := conn.Exec(`
		INSERT INTO pending_submission (full_name, text, email, confirmed, token, created_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, fullName, text, email, token, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test pending submission: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// SentMail records one FakeMailer delivery.
type SentMail struct {
	To    string
	Name  string
	Token string
}

// FakeMailer is a mailer.Sender that records deliveries and can be told
// to fail.
type FakeMailer struct {
	mu   sync.Mutex
	Fail bool
	Sent []SentMail
}

func (f *FakeMailer) SendConfirmation(to, name, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Fail {
		return errors.New("smtp: connection refused")
	}
	f.Sent = append(f.Sent, SentMail{To: to, Name: name, Token: token})
	return nil
}

// LastSent returns the most recent delivery.
func (f *FakeMailer) LastSent(t *testing.T) SentMail {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		t.Fatal("no mail was sent")
	}
	return f.Sent[len(f.Sent)-1]
}

// MakeFormRequest creates an HTTP test request with urlencoded form fields
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
