package image

import (
	"bytes"
	"context"
	"io"

	"socialgram/internal/processor"
)

var _ processor.Processor = (*NormalizeProcessor)(nil)

// NormalizeProcessor produces the full-size encode of an uploaded image:
// color model flattened to RGB, re-encoded as quality-optimized JPEG.
// Dimensions are unchanged unless the options carry a bound (the avatar
// path bounds to 300x300); bounded output preserves aspect ratio and is
// never upscaled.
type NormalizeProcessor struct {
	config *processor.Config
}

func NewNormalizeProcessor(cfg *processor.Config) *NormalizeProcessor {
	if cfg == nil {
		cfg = processor.DefaultConfig()
	}
	return &NormalizeProcessor{config: cfg}
}

func (p *NormalizeProcessor) Name() string {
	return "normalize"
}

func (p *NormalizeProcessor) SupportedTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
	}
}

func (p *NormalizeProcessor) Process(ctx context.Context, opts *processor.Options, input io.Reader) (*processor.Result, error) {
	if opts == nil {
		opts = &processor.Options{}
	}

	img, _, err := decodeImage(input)
	if err != nil {
		return nil, err
	}

	out := flattenRGB(img)
	if opts.Width > 0 && opts.Height > 0 {
		out = boundImage(out, opts.Width, opts.Height)
	}

	quality := getQuality(opts.Quality, p.config.Quality)
	buf, err := encodeJPEG(out, quality)
	if err != nil {
		return nil, err
	}

	bounds := out.Bounds()
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
