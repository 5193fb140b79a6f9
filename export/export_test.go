// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmarchetti/citazioni/models"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	sub := models.PendingSubmission{
		ID:        42,
		FullName:  "Ada Lovelace",
		Text:      "La macchina analitica tesse motivi algebrici.",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	n, err := Write(dir, sub)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n == 0 {
		t.Error("Write() reported zero bytes")
	}

	data, err := os.ReadFile(filepath.Join(dir, DirName, "42.txt"))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}

	content := string(data)
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "motivi algebrici", "2025-03-14"} {
		if !strings.Contains(content, want) {
			t.Errorf("artifact missing %q:\n%s", want, content)
		}
	}
}

func TestWrite_BadDir(t *testing.T) {
	// A data dir that is actually a file cannot hold the export subdir.
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Write(file, models.PendingSubmission{ID: 1}); err == nil {
		t.Error("expected error when the data dir is not a directory")
	}
}
