package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvMaxFileBytes is the environment variable name for the input and template size limit.
	EnvMaxFileBytes = "TIMESHEET_MAX_FILE_BYTES"

	// EnvTemplate names the template as a file path or http(s) URL.
	EnvTemplate = "TIMESHEET_TEMPLATE"

	// EnvProfile points at a YAML profile file.
	EnvProfile = "TIMESHEET_PROFILE"

	// EnvGhostscript overrides the Ghostscript binary used for image output.
	EnvGhostscript = "TIMESHEET_GS_PATH"

	// EnvLogLevel sets the log level (debug, info, warn, error).
	EnvLogLevel = "TIMESHEET_LOG_LEVEL"

	// DefaultMaxFileBytes is the default maximum accepted file size (50 MiB).
	DefaultMaxFileBytes int64 = 50 << 20

	// DefaultTemplate is the fillable form shipped next to the binary.
	DefaultTemplate = "Timesheet-Fillable.pdf"

	// DefaultGhostscript is looked up on PATH.
	DefaultGhostscript = "gs"
)

// Config holds runtime configuration sourced from environment variables and
// an optional profile file.
type Config struct {
	MaxFileSizeBytes int64
	Template         string
	ProfilePath      string
	Ghostscript      string
	LogLevel         slog.Level
	Profile          Profile
}

// MaxFileSizeMB returns the configured limit in whole megabytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSizeBytes >> 20
}

// Load reads Config from environment variables, falling back to defaults for
// missing or invalid values. The profile named by EnvProfile is not read
// here; call ApplyProfile.
func Load() *Config {
	cfg := &Config{
		MaxFileSizeBytes: DefaultMaxFileBytes,
		Template:         DefaultTemplate,
		Ghostscript:      DefaultGhostscript,
		LogLevel:         slog.LevelInfo,
	}
	if v := os.Getenv(EnvMaxFileBytes); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSizeBytes = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemplate)); v != "" {
		cfg.Template = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGhostscript)); v != "" {
		cfg.Ghostscript = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		cfg.ProfilePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	return cfg
}

// ApplyProfile reads the YAML profile at path (or ProfilePath when path is
// empty) into c. A profile template is only used when EnvTemplate is unset.
func (c *Config) ApplyProfile(path string) error {
	if path == "" {
		path = c.ProfilePath
	}
	if path == "" {
		return nil
	}
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	c.ProfilePath = path
	c.Profile = *p
	if p.Template != "" && os.Getenv(EnvTemplate) == "" {
		c.Template = p.Template
	}
	return nil
}
