// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export writes a denormalized text artifact for each submission
// under <data-dir>/submissions/. It is a convenience dump for the site
// operator, not authoritative state: callers log a failure and move on.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmarchetti/citazioni/models"
)

// DirName is the subdirectory of the data dir that holds the artifacts.
const DirName = "submissions"

// Write dumps a pending submission to <data-dir>/submissions/<id>.txt and
// returns the number of bytes written.
func Write(dataDir string, sub models.PendingSubmission) (int, error) {
	dir := filepath.Join(dataDir, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}

	content := fmt.Sprintf("id: %d\nnome: %s\nemail: %s\ndata: %s\n\n%s\n",
		sub.ID,
		sub.FullName,
		sub.Email,
		sub.CreatedAt.Format("2006-01-02 15:04:05"),
		sub.Text,
	)

	path := filepath.Join(dir, fmt.Sprintf("%d.txt", sub.ID))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("write export file: %w", err)
	}

	return len(content), nil
}
