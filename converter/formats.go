package converter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// nativeExts are all input formats handled in Go.
var nativeExts = map[string]bool{
	".txt":  true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".xlsx": true,
	".xlsm": true,
}

// formatConverter reads input files using pure Go libraries.
type formatConverter struct {
	htmlConverter *md.Converter
}

func newFormatConverter() *formatConverter {
	return &formatConverter{
		htmlConverter: md.NewConverter("", true, &md.Options{EscapeMode: "disabled"}),
	}
}

// CanConvert returns true when the file extension is handled natively.
// Files without an extension are read as text.
func (c *formatConverter) CanConvert(filePath string) bool {
	if filePath == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	return ext == "" || nativeExts[ext]
}

// SupportedFormats returns supported extensions without the leading dot.
func (c *formatConverter) SupportedFormats() []string {
	out := make([]string, 0, len(nativeExts))
	for ext := range nativeExts {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	return out
}

// ConvertFile reads filePath and returns timesheet text.
func (c *formatConverter) ConvertFile(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != "" && !nativeExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	switch ext {
	case ".xlsx", ".xlsm":
		return convertXLSX(filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	switch ext {
	case ".html", ".htm":
		return c.convertHTML(string(data))
	default:
		return string(data), nil
	}
}

// ConvertURL fetches an HTTP/HTTPS URL and converts the response body.
// HTML bodies go through the HTML reader; anything else is read as text.
func (c *formatConverter) ConvertURL(ctx context.Context, url string, maxBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}

	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "text/html") {
		return c.convertHTML(string(body))
	}
	return string(body), nil
}
