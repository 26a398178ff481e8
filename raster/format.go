// Package raster delivers a filled PDF in the requested output format,
// rendering page one to an image for the png and jpeg formats.
package raster

import (
	"fmt"
	"strings"
)

// Format is an output format selector.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// OutputBase is the file name stem of every delivered file.
const OutputBase = "filled_timesheet"

// ParseFormat normalizes s to a Format. "jpg" is accepted for jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (expected pdf, png, or jpeg)", s)
	}
}

// IsImage reports whether f requires rasterization.
func (f Format) IsImage() bool {
	return f == FormatPNG || f == FormatJPEG
}

// MIMEType returns the content type of f.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}

// Filename returns the download name for f.
func (f Format) Filename() string {
	return OutputBase + "." + string(f)
}
