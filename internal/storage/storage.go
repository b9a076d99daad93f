package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("storage: file not found")
	ErrInvalidPath = errors.New("storage: invalid path")
)

// Storage is the filesystem surface the pipeline writes through. All
// coordination between producers, workers and the reaper happens via these
// paths; there is no shared in-memory state.
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
