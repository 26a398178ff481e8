package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// Scale is the page zoom used for image output (144 DPI).
	Scale = 2.0

	// JPEGQuality corresponds to an encoder quality of 0.8.
	JPEGQuality = 80
)

// Rasterizer renders the first page of a PDF.
type Rasterizer interface {
	RasterizeFirstPage(ctx context.Context, pdf []byte, scale float64) (image.Image, error)
}

// Output is a deliverable file.
type Output struct {
	Data     []byte
	Filename string
	MIMEType string
	Format   Format
}

// Render converts a filled PDF into format f. PDF output is returned as-is;
// image output renders page one through r and re-encodes it.
func Render(ctx context.Context, r Rasterizer, pdf []byte, f Format) (*Output, error) {
	out := &Output{Filename: f.Filename(), MIMEType: f.MIMEType(), Format: f}
	if !f.IsImage() {
		out.Data = pdf
		return out, nil
	}
	if r == nil {
		return nil, fmt.Errorf("no rasterizer configured for %s output", f)
	}

	img, err := r.RasterizeFirstPage(ctx, pdf, Scale)
	if err != nil {
		return nil, err
	}

	data, err := Encode(img, f)
	if err != nil {
		return nil, err
	}
	out.Data = data
	return out, nil
}

// Encode writes img as png or jpeg.
func Encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	default:
		return nil, fmt.Errorf("cannot encode image as %s", f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}
