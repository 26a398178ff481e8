package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/Cortexa-LLC/mcp/src/timesheet/pdfform/pdftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	img       image.Image
	err       error
	gotScale  float64
	callCount int
}

func (f *fakeRasterizer) RasterizeFirstPage(_ context.Context, _ []byte, scale float64) (image.Image, error) {
	f.callCount++
	f.gotScale = scale
	return f.img, f.err
}

func whitePage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// withNoGhostscript overrides lookPath for the duration of f.
func withNoGhostscript(t *testing.T, f func()) {
	t.Helper()
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()
	f()
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"pdf": FormatPDF, "": FormatPDF, "PNG": FormatPNG,
		"jpeg": FormatJPEG, "jpg": FormatJPEG, " JPG ": FormatJPEG,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "filled_timesheet.pdf", FormatPDF.Filename())
	assert.Equal(t, "application/pdf", FormatPDF.MIMEType())
	assert.Equal(t, "filled_timesheet.png", FormatPNG.Filename())
	assert.Equal(t, "image/png", FormatPNG.MIMEType())
	assert.Equal(t, "filled_timesheet.jpeg", FormatJPEG.Filename())
	assert.Equal(t, "image/jpeg", FormatJPEG.MIMEType())
	assert.False(t, FormatPDF.IsImage())
	assert.True(t, FormatJPEG.IsImage())
}

func TestRender_PDFPassThrough(t *testing.T) {
	r := &fakeRasterizer{}
	out, err := Render(context.Background(), r, []byte("%PDF"), FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out.Data)
	assert.Equal(t, "application/pdf", out.MIMEType)
	assert.Zero(t, r.callCount)
}

func TestRender_PNG(t *testing.T) {
	r := &fakeRasterizer{img: whitePage()}
	out, err := Render(context.Background(), r, []byte("%PDF"), FormatPNG)

	require.NoError(t, err)
	assert.Equal(t, Scale, r.gotScale)
	img, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, "filled_timesheet.png", out.Filename)
}

func TestRender_JPEG(t *testing.T) {
	r := &fakeRasterizer{img: whitePage()}
	out, err := Render(context.Background(), r, []byte("%PDF"), FormatJPEG)

	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dy())
	assert.Equal(t, "image/jpeg", out.MIMEType)
}

func TestRender_RasterizerError(t *testing.T) {
	r := &fakeRasterizer{err: errors.New("render failed")}
	_, err := Render(context.Background(), r, []byte("%PDF"), FormatPNG)
	assert.ErrorContains(t, err, "render failed")
}

func TestRender_NilRasterizer(t *testing.T) {
	_, err := Render(context.Background(), nil, []byte("%PDF"), FormatJPEG)
	assert.Error(t, err)
}

func TestEncode_RejectsPDF(t *testing.T) {
	_, err := Encode(whitePage(), FormatPDF)
	assert.Error(t, err)
}

func TestGhostscript_Missing(t *testing.T) {
	withNoGhostscript(t, func() {
		g := NewGhostscript("")
		assert.False(t, g.Available())
		_, err := g.RasterizeFirstPage(context.Background(), []byte("%PDF"), Scale)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghostscript")
	})
}

func TestGhostscript_InvalidScale(t *testing.T) {
	g := NewGhostscript("")
	if !g.Available() {
		t.Skip("Ghostscript not installed; skipping scale validation test")
	}
	_, err := g.RasterizeFirstPage(context.Background(), []byte("%PDF"), 0)
	assert.Error(t, err)
}

// TestGhostscript_RendersFirstPage exercises a real render: a US Letter page
// at scale 2 is 1224×1584 pixels.
func TestGhostscript_RendersFirstPage(t *testing.T) {
	g := NewGhostscript("")
	if !g.Available() {
		t.Skip("Ghostscript not installed; skipping render test")
	}
	img, err := g.RasterizeFirstPage(context.Background(), pdftest.Form("Name"), Scale)
	require.NoError(t, err)
	assert.Equal(t, 1224, img.Bounds().Dx())
	assert.Equal(t, 1584, img.Bounds().Dy())
}

func TestGhostscript_NotAPDF(t *testing.T) {
	g := NewGhostscript("")
	if !g.Available() {
		t.Skip("Ghostscript not installed; skipping invalid input test")
	}
	_, err := g.RasterizeFirstPage(context.Background(), []byte("not a pdf"), Scale)
	assert.Error(t, err)
}
