package pdfform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Source yields template bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// NewSource resolves ref to a Source. http:// and https:// references are
// fetched with client (http.DefaultClient when nil); file:// URIs and plain
// paths are read from disk. maxBytes <= 0 disables the size check.
func NewSource(ref string, maxBytes int64, client *http.Client) (Source, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &HTTPSource{URL: ref, MaxBytes: maxBytes, Client: client}, nil
	}
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid template URI: %s", ref)
		}
		ref = u.Path
	}
	if strings.Contains(ref, "://") {
		return nil, fmt.Errorf("unsupported template URI scheme: %s (expected file, http, or https)", ref)
	}
	if ref == "" {
		return nil, fmt.Errorf("template path is empty")
	}
	return &FileSource{Path: ref, MaxBytes: maxBytes}, nil
}

// FileSource reads a template from the local filesystem.
type FileSource struct {
	Path     string
	MaxBytes int64
}

func (s *FileSource) String() string { return s.Path }

// Fetch reads the file after checking its size.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("template not found: %s", s.Path)
	}
	if s.MaxBytes > 0 && info.Size() > s.MaxBytes {
		return nil, fmt.Errorf("template too large: %d bytes (max %d)", info.Size(), s.MaxBytes)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return data, nil
}

// HTTPSource downloads a template.
type HTTPSource struct {
	URL      string
	MaxBytes int64
	Client   *http.Client
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch performs a GET and returns the body. Non-2xx responses fail.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.URL, err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, s.URL)
	}

	body := io.Reader(resp.Body)
	if s.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, s.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return nil, fmt.Errorf("template too large: more than %d bytes", s.MaxBytes)
	}
	return data, nil
}
