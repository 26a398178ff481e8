package converter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/timesheet/config"
)

var (
	// ErrTooLarge is returned for inputs over the configured size limit.
	ErrTooLarge = errors.New("input too large")

	// ErrUnsupported is returned for input formats that cannot be read.
	ErrUnsupported = errors.New("unsupported input format")
)

// Converter turns timesheet input files into the delimited text the record
// parser reads. HTTP/HTTPS URIs are fetched; file:// URIs are resolved to
// local paths.
type Converter struct {
	native *formatConverter
	cfg    *config.Config
}

// NewConverter creates a Converter. A nil cfg loads environment config.
func NewConverter(cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.Load()
	}
	return &Converter{
		native: newFormatConverter(),
		cfg:    cfg,
	}
}

// ReadFile converts a local file to timesheet text.
func (c *Converter) ReadFile(_ context.Context, filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("file not found: %s", filePath)
	}
	if info.Size() > c.cfg.MaxFileSizeBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), c.cfg.MaxFileSizeBytes)
	}
	if !c.native.CanConvert(filePath) {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(filePath))
	}
	return c.native.ConvertFile(filePath)
}

// ReadURI converts a URI to timesheet text.
// Supported schemes: file://, http://, https://
func (c *Converter) ReadURI(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %s", uri)
	}

	switch u.Scheme {
	case "file":
		return c.ReadFile(ctx, u.Path)
	case "http", "https":
		return c.native.ConvertURL(ctx, uri, c.cfg.MaxFileSizeBytes)
	default:
		return "", fmt.Errorf("unsupported URI scheme: %q (expected file, http, or https)", u.Scheme)
	}
}

// Read dispatches on the shape of ref: URIs go to ReadURI, anything else is
// a local path.
func (c *Converter) Read(ctx context.Context, ref string) (string, error) {
	if strings.Contains(ref, "://") {
		return c.ReadURI(ctx, ref)
	}
	return c.ReadFile(ctx, ref)
}

// SupportedFormats returns the readable input extensions, sorted.
func (c *Converter) SupportedFormats() []string {
	fmts := c.native.SupportedFormats()
	sort.Strings(fmts)
	return fmts
}

// GetConversionInfo returns a Markdown summary of inputs, outputs and config.
func (c *Converter) GetConversionInfo(_ context.Context) string {
	pol := c.cfg.Policy()
	return fmt.Sprintf(`# Timesheet Filler Info

## Input Formats
%s

Each data line is date,time range,hours. Use X for "no shift" or "no hours".
%s

## Output Formats
- %s

## Configuration
- Template: %s
- Max file size: %d MB
- Line slots: 14
- Total field: %s
- Name field: %s`,
		"- "+strings.Join(c.SupportedFormats(), "\n- "),
		nameLineHint(pol.NameLine),
		strings.Join(c.cfg.Formats(), "\n- "),
		c.cfg.Template,
		c.cfg.MaxFileSizeMB(),
		pol.Fields.Total,
		pol.Fields.Name,
	)
}

func nameLineHint(nameLine bool) string {
	if nameLine {
		return "The last non-empty line is the employee name."
	}
	return "Every non-empty line is a data line."
}
