package image

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"socialgram/internal/processor"
)

var _ processor.Processor = (*ThumbnailProcessor)(nil)

// ThumbnailProcessor produces the bounded-dimension thumbnail encode:
// flattened to RGB, scaled down in a single Lanczos pass so the larger
// dimension matches the bound, never upscaled.
type ThumbnailProcessor struct {
	config *processor.Config
}

func NewThumbnailProcessor(cfg *processor.Config) *ThumbnailProcessor {
	if cfg == nil {
		cfg = processor.DefaultConfig()
	}
	return &ThumbnailProcessor{config: cfg}
}

func (p *ThumbnailProcessor) Name() string {
	return "thumbnail"
}

func (p *ThumbnailProcessor) SupportedTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
	}
}

func (p *ThumbnailProcessor) Process(ctx context.Context, opts *processor.Options, input io.Reader) (*processor.Result, error) {
	if opts == nil || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: width and height are required", processor.ErrInvalidConfig)
	}

	img, _, err := decodeImage(input)
	if err != nil {
		return nil, err
	}

	thumb := boundImage(flattenRGB(img), opts.Width, opts.Height)

	quality := getQuality(opts.Quality, p.config.Quality)
	buf, err := encodeJPEG(thumb, quality)
	if err != nil {
		return nil, err
	}

	bounds := thumb.Bounds()
	return &processor.Result{
		Data:        bytes.NewReader(buf.Bytes()),
		ContentType: "image/jpeg",
		Size:        int64(buf.Len()),
		Metadata: processor.ResultMetadata{
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			Quality: quality,
		},
	}, nil
}
