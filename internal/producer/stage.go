// Package producer stages uploaded files into a media kind's temp
// directory so the HTTP handler can respond before any image work runs.
// A staged file is owned by the job that references it: the worker deletes
// it on success, the temp reaper sweeps it up otherwise.
package producer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"socialgram/internal/storage"
)

// Stage writes the upload to <dir>/<uuid>_<name> and returns the staged
// path. The uuid prefix keeps concurrent uploads of the same filename from
// colliding and makes every derived output path unique.
func Stage(ctx context.Context, store storage.Storage, dir, originalName string, reader io.Reader) (string, error) {
	name := sanitizeFilename(originalName)
	staged := filepath.Join(dir, fmt.Sprintf("%s_%s", uuid.New().String(), name))

	if _, err := store.Save(ctx, staged, reader); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return staged, nil
}

// sanitizeFilename strips any directory components and characters that
// would escape the staging directory.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "upload"
	}
	return name
}
