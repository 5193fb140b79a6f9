// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/dmarchetti/citazioni/metrics"
	"github.com/dmarchetti/citazioni/testutil"
)

func newModerationHandler(t *testing.T) (*ModerationHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	return NewModerationHandler(conn, cfg, metrics.New()), conn
}

// idRequest builds a request with the {id} path value set, the way the
// mux would before dispatching.
func idRequest(method, path, id string, form url.Values) *http.Request {
	var r *http.Request
	if form != nil {
		r = testutil.MakeFormRequest(method, path, form)
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	r.SetPathValue("id", id)
	return r
}

func TestApprove(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestPending(t, conn, "Ada Lovelace", "Una frase", "ada@example.com", "tok-ada")

	w := httptest.NewRecorder()
	h.Approve(w, idRequest("POST", "/admin/approve/", strconv.FormatInt(id, 10), nil))

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Errorf("Location = %q, want /admin/dashboard", loc)
	}

	var author string
	var validated int
	if err := conn.QueryRow(`SELECT author, validated FROM quotes`).Scan(&author, &validated); err != nil {
		t.Fatalf("approved quote not published: %v", err)
	}
	if author != "Ada Lovelace" || validated != 1 {
		t.Errorf("published (%q, %d), want (%q, 1)", author, validated, "Ada Lovelace")
	}
	if n := testutil.CountRows(t, conn, "pending_submission"); n != 0 {
		t.Errorf("pending row should be consumed, found %d", n)
	}
}

func TestApprove_NotFound(t *testing.T) {
	h, conn := newModerationHandler(t)

	w := httptest.NewRecorder()
	h.Approve(w, idRequest("POST", "/admin/approve/", "99", nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)
	if n := testutil.CountRows(t, conn, "quotes"); n != 0 {
		t.Errorf("nothing should be published, found %d quotes", n)
	}
}

func TestApprove_RetryDoesNotPublishTwice(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestPending(t, conn, "Ada Lovelace", "Una frase", "ada@example.com", "tok-ada")

	w := httptest.NewRecorder()
	h.Approve(w, idRequest("POST", "/admin/approve/", strconv.FormatInt(id, 10), nil))
	testutil.AssertStatus(t, w, http.StatusSeeOther)

	w = httptest.NewRecorder()
	h.Approve(w, idRequest("POST", "/admin/approve/", strconv.FormatInt(id, 10), nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	if n := testutil.CountRows(t, conn, "quotes"); n != 1 {
		t.Errorf("retried approve must not publish again, found %d quotes", n)
	}
}

func TestApprove_Atomic(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestPending(t, conn, "Ada Lovelace", "Una frase", "ada@example.com", "tok-ada")

	// Make the second half of the transaction fail after the insert
	// succeeded. The insert must roll back with it.
	_, err := conn.Exec(`
		CREATE TRIGGER block_delete BEFORE DELETE ON pending_submission
		BEGIN SELECT RAISE(ABORT, 'forced'); END;
	`)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Approve(w, idRequest("POST", "/admin/approve/", strconv.FormatInt(id, 10), nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	if n := testutil.CountRows(t, conn, "quotes"); n != 0 {
		t.Errorf("insert should roll back with the failed delete, found %d quotes", n)
	}
	if n := testutil.CountRows(t, conn, "pending_submission"); n != 1 {
		t.Errorf("pending row should survive the failed approval, found %d", n)
	}
}

func TestReject(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestPending(t, conn, "Ada Lovelace", "Una frase", "ada@example.com", "tok-ada")

	w := httptest.NewRecorder()
	h.Reject(w, idRequest("POST", "/admin/reject/", strconv.FormatInt(id, 10), nil))

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if n := testutil.CountRows(t, conn, "pending_submission"); n != 0 {
		t.Errorf("rejected row should be deleted, found %d", n)
	}
	if n := testutil.CountRows(t, conn, "quotes"); n != 0 {
		t.Errorf("reject must not publish, found %d quotes", n)
	}

	// Rejecting the same id again is a 404
	w = httptest.NewRecorder()
	h.Reject(w, idRequest("POST", "/admin/reject/", strconv.FormatInt(id, 10), nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name          string
		form          url.Values
		status        int
		wantValidated int
	}{
		{
			"validated quote",
			url.Values{"text": {"Una frase"}, "author": {"Seneca"}, "validated": {"1"}},
			http.StatusSeeOther, 1,
		},
		{
			"unvalidated quote",
			url.Values{"text": {"Una frase"}, "author": {"Seneca"}},
			http.StatusSeeOther, 0,
		},
		{
			"checkbox value",
			url.Values{"text": {"Una frase"}, "author": {"Seneca"}, "validated": {"on"}},
			http.StatusSeeOther, 1,
		},
		{
			"missing text",
			url.Values{"author": {"Seneca"}},
			http.StatusBadRequest, 0,
		},
		{
			"missing author",
			url.Values{"text": {"Una frase"}},
			http.StatusBadRequest, 0,
		},
		{
			"whitespace author",
			url.Values{"text": {"Una frase"}, "author": {"   "}},
			http.StatusBadRequest, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, conn := newModerationHandler(t)

			w := httptest.NewRecorder()
			h.Add(w, testutil.MakeFormRequest("POST", "/admin/quotes/add", tt.form))

			testutil.AssertStatus(t, w, tt.status)

			if tt.status != http.StatusSeeOther {
				if n := testutil.CountRows(t, conn, "quotes"); n != 0 {
					t.Errorf("invalid form must not insert, found %d quotes", n)
				}
				return
			}

			var validated int
			if err := conn.QueryRow(`SELECT validated FROM quotes`).Scan(&validated); err != nil {
				t.Fatalf("quote not inserted: %v", err)
			}
			if validated != tt.wantValidated {
				t.Errorf("validated = %d, want %d", validated, tt.wantValidated)
			}
		})
	}
}

func TestEdit(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestQuote(t, conn, "Vecchio testo", "Anonimo", false)

	form := url.Values{"text": {"Nuovo testo"}, "author": {"Seneca"}, "validated": {"1"}}
	w := httptest.NewRecorder()
	h.Edit(w, idRequest("POST", "/admin/quotes/edit/", strconv.FormatInt(id, 10), form))

	testutil.AssertStatus(t, w, http.StatusSeeOther)

	var text, author string
	var validated int
	if err := conn.QueryRow(`SELECT text, author, validated FROM quotes WHERE id = ?`, id).
		Scan(&text, &author, &validated); err != nil {
		t.Fatal(err)
	}
	if text != "Nuovo testo" || author != "Seneca" || validated != 1 {
		t.Errorf("after edit got (%q, %q, %d), want (%q, %q, 1)", text, author, validated,
			"Nuovo testo", "Seneca")
	}
}

func TestEdit_NotFound(t *testing.T) {
	h, _ := newModerationHandler(t)

	form := url.Values{"text": {"Nuovo testo"}, "author": {"Seneca"}}
	w := httptest.NewRecorder()
	h.Edit(w, idRequest("POST", "/admin/quotes/edit/", "99", form))

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	h, conn := newModerationHandler(t)
	id := testutil.CreateTestQuote(t, conn, "Una frase", "Seneca", true)

	w := httptest.NewRecorder()
	h.Delete(w, idRequest("POST", "/admin/quotes/delete/", strconv.FormatInt(id, 10), nil))

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if n := testutil.CountRows(t, conn, "quotes"); n != 0 {
		t.Errorf("quote should be deleted, found %d", n)
	}

	w = httptest.NewRecorder()
	h.Delete(w, idRequest("POST", "/admin/quotes/delete/", strconv.FormatInt(id, 10), nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestPathID_Invalid(t *testing.T) {
	h, _ := newModerationHandler(t)

	for _, id := range []string{"abc", "0", "-3", ""} {
		t.Run("id "+id, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Delete(w, idRequest("POST", "/admin/quotes/delete/", id, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
