package processor

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedType = errors.New("processor: unsupported file type")
	ErrInvalidConfig   = errors.New("processor: invalid configuration")
	ErrCorruptedFile   = errors.New("processor: file appears corrupted")
)

type Processor interface {
	Process(ctx context.Context, opts *Options, input io.Reader) (*Result, error)
	SupportedTypes() []string
	Name() string
}

type Options struct {
	// Width and Height bound the output. Zero means "leave dimensions
	// alone" for the normalize processor; the thumbnail processor
	// requires both.
	Width   int
	Height  int
	Quality int
}

type Result struct {
	Data        io.Reader
	ContentType string
	Size        int64
	Metadata    ResultMetadata
}

type ResultMetadata struct {
	Width   int `json:"width,omitempty"`
	Height  int `json:"height,omitempty"`
	Quality int `json:"quality,omitempty"`
}

type Config struct {
	MaxFileSize int64
	Quality     int
}

func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 20 * 1024 * 1024,
		Quality:     85,
	}
}
