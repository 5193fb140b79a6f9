// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"testing"

	"github.com/dmarchetti/citazioni/models"
	"github.com/dmarchetti/citazioni/testutil"
)

func TestListQuotes_Pagination(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	for i := 1; i <= 25; i++ {
		testutil.CreateTestQuote(t, conn, fmt.Sprintf("Frase numero %d", i), "Seneca", true)
	}

	tests := []struct {
		page     int
		wantRows int
		firstID  int64
	}{
		{1, 10, 25}, // newest first
		{2, 10, 15},
		{3, 5, 5},
		{0, 10, 25}, // clamped up to page 1
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			res, err := ListQuotes(conn, cfg.DatabaseType, models.ListingQuery{
				FilterStatus: models.FilterAll,
				Page:         tt.page,
			})
			if err != nil {
				t.Fatal(err)
			}

			if res.TotalCount != 25 || res.TotalPages != 3 {
				t.Errorf("total = %d/%d pages, want 25/3", res.TotalCount, res.TotalPages)
			}
			if len(res.Quotes) != tt.wantRows {
				t.Fatalf("got %d rows, want %d", len(res.Quotes), tt.wantRows)
			}
			if res.Quotes[0].ID != tt.firstID {
				t.Errorf("first id = %d, want %d", res.Quotes[0].ID, tt.firstID)
			}
			if res.Quotes[0].SubmittedAgo == "" {
				t.Error("SubmittedAgo should be populated")
			}
		})
	}
}

func TestListQuotes_Search(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	testutil.CreateTestQuote(t, conn, "La fortuna aiuta gli audaci", "Virgilio", true)
	testutil.CreateTestQuote(t, conn, "Carpe diem", "Orazio", false)
	testutil.CreateTestQuote(t, conn, "Il dado è tratto", "Cesare", true)

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"matches text", "fortuna", 1},
		{"matches author", "orazio", 1},
		{"case insensitive", "FORTUNA", 1},
		{"substring", "dado", 1},
		{"no match", "platone", 0},
		{"empty matches all", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ListQuotes(conn, cfg.DatabaseType, models.ListingQuery{
				Search:       tt.search,
				FilterStatus: models.FilterAll,
				Page:         1,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Quotes) != tt.want {
				t.Errorf("got %d rows, want %d", len(res.Quotes), tt.want)
			}
		})
	}
}

func TestListQuotes_FilterStatus(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	testutil.CreateTestQuote(t, conn, "Approvata", "Seneca", true)
	testutil.CreateTestQuote(t, conn, "In attesa", "Anonimo", false)
	testutil.CreateTestQuote(t, conn, "Anche approvata", "Cicerone", true)

	tests := []struct {
		filter string
		want   int
	}{
		{models.FilterAll, 3},
		{models.FilterValidated, 2},
		{models.FilterNotValidated, 1},
		{"garbage", 3}, // unknown filter falls back to all
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			res, err := ListQuotes(conn, cfg.DatabaseType, models.ListingQuery{
				FilterStatus: tt.filter,
				Page:         1,
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Quotes) != tt.want {
				t.Errorf("got %d rows, want %d", len(res.Quotes), tt.want)
			}
		})
	}
}

func TestListQuotes_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	res, err := ListQuotes(conn, cfg.DatabaseType, models.ListingQuery{
		FilterStatus: models.FilterAll,
		Page:         1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 0 || res.TotalPages != 0 || len(res.Quotes) != 0 {
		t.Errorf("empty table: got total=%d pages=%d rows=%d", res.TotalCount, res.TotalPages, len(res.Quotes))
	}
}

func TestListPending(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)

	testutil.CreateTestPending(t, conn, "Ada Lovelace", "Prima", "ada@example.com", "tok-1")
	testutil.CreateTestPending(t, conn, "Grace Hopper", "Seconda", "grace@example.com", "tok-2")

	pending, err := listPending(conn, cfg.DatabaseType)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending rows, want 2", len(pending))
	}
	if pending[0].FullName != "Grace Hopper" {
		t.Errorf("expected newest first, got %q", pending[0].FullName)
	}
}
