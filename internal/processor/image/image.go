package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"socialgram/internal/processor"
)

func decodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", processor.ErrCorruptedFile, err)
	}
	return img, format, nil
}

// flattenRGB composites the image onto an opaque white background,
// discarding alpha and palette color models before the JPEG encode.
func flattenRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}

// boundImage scales the image down so that neither dimension exceeds
// width x height, preserving aspect ratio. Images already within the
// bound are returned unchanged; there is never an upscale.
func boundImage(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}
	return imaging.Fit(img, width, height, imaging.Lanczos)
}

func encodeJPEG(img image.Image, quality int) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	if err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return &buf, nil
}

func getQuality(optsQuality, defaultQuality int) int {
	if optsQuality > 0 && optsQuality <= 100 {
		return optsQuality
	}
	return defaultQuality
}
