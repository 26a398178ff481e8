package raster

// ghostscript.go: page rendering through the Ghostscript binary.
//
// Available() probes for the binary at call time, so image output degrades
// to a clear error when Ghostscript is absent while PDF output keeps working.

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// lookPath is the exec.LookPath implementation used by Available.
// Tests may replace it to simulate a missing Ghostscript binary.
var lookPath = exec.LookPath

// baseDPI is the PDF user-space resolution; scale 1 renders at 72 DPI.
const baseDPI = 72

// Ghostscript renders PDF pages with the gs binary.
type Ghostscript struct {
	Binary string
}

// NewGhostscript returns a renderer using binary ("gs" when empty).
func NewGhostscript(binary string) *Ghostscript {
	if binary == "" {
		binary = "gs"
	}
	return &Ghostscript{Binary: binary}
}

// Available reports whether the binary can be found.
func (g *Ghostscript) Available() bool {
	_, err := lookPath(g.Binary)
	return err == nil
}

// RasterizeFirstPage renders page one of pdf at scale × 72 DPI.
func (g *Ghostscript) RasterizeFirstPage(ctx context.Context, pdf []byte, scale float64) (image.Image, error) {
	if !g.Available() {
		return nil, fmt.Errorf("ghostscript (%s) is not installed or not on PATH; cannot render images", g.Binary)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}

	dir, err := os.MkdirTemp("", "timesheet-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir for rendering: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	in := filepath.Join(dir, "in.pdf")
	out := filepath.Join(dir, "page1.png")
	if err := os.WriteFile(in, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf for rendering: %w", err)
	}

	dpi := int(math.Round(baseDPI * scale))
	cmd := exec.CommandContext(ctx, g.Binary,
		"-q", "-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=png16m",
		"-dFirstPage=1", "-dLastPage=1",
		"-dTextAlphaBits=4", "-dGraphicsAlphaBits=4",
		fmt.Sprintf("-r%d", dpi),
		"-o", out,
		in,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ghostscript: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("ghostscript: %w", err)
	}

	img, err := imaging.Open(out)
	if err != nil {
		return nil, fmt.Errorf("open rendered page: %w", err)
	}
	return img, nil
}
