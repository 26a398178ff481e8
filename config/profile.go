package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"gopkg.in/yaml.v3"
)

// Profile describes a template variant. Pointer fields distinguish "not set"
// from an explicit false so unset values keep their defaults.
type Profile struct {
	Template            string               `yaml:"template"`
	NameLine            *bool                `yaml:"name_line"`
	FixedName           string               `yaml:"fixed_name"`
	SentinelPlaceholder *bool                `yaml:"sentinel_placeholder"`
	WholeHoursDecimal   *bool                `yaml:"whole_hours_decimal"`
	Placeholder         string               `yaml:"placeholder"`
	Fields              timesheet.FieldNames `yaml:"fields"`
	Formats             []string             `yaml:"formats"`
}

// DefaultFormats are the output formats enabled when a profile names none.
var DefaultFormats = []string{"pdf", "png", "jpeg"}

// LoadProfile reads and parses a YAML profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	for i, f := range p.Formats {
		p.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return &p, nil
}

// Policy merges the profile over timesheet.DefaultPolicy.
func (c *Config) Policy() timesheet.Policy {
	pol := timesheet.DefaultPolicy()
	p := c.Profile

	if p.NameLine != nil {
		pol.NameLine = *p.NameLine
	}
	pol.FixedName = p.FixedName
	if p.SentinelPlaceholder != nil {
		pol.SentinelPlaceholder = *p.SentinelPlaceholder
	}
	if p.WholeHoursDecimal != nil {
		pol.WholeHoursDecimal = *p.WholeHoursDecimal
	}
	if p.Placeholder != "" {
		pol.Placeholder = p.Placeholder
	}

	f := p.Fields
	if f.Date != "" {
		pol.Fields.Date = f.Date
	}
	if f.Time != "" {
		pol.Fields.Time = f.Time
	}
	if f.Hours != "" {
		pol.Fields.Hours = f.Hours
	}
	if f.Total != "" {
		pol.Fields.Total = f.Total
	}
	if f.Name != "" {
		pol.Fields.Name = f.Name
	}
	return pol
}

// Formats returns the enabled output formats.
func (c *Config) Formats() []string {
	if len(c.Profile.Formats) == 0 {
		return DefaultFormats
	}
	return c.Profile.Formats
}
