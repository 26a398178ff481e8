package timesheet

import (
	"strconv"
	"strings"
)

// DefaultPlaceholder replaces sentinel cells on the form.
const DefaultPlaceholder = "---"

// lineToken is substituted with the 1-based line number in field patterns.
const lineToken = "{n}"

// FieldNames is the naming convention of the template's text fields.
// Line patterns contain "{n}", which is replaced by the line number.
type FieldNames struct {
	Date  string `yaml:"date"`
	Time  string `yaml:"time"`
	Hours string `yaml:"hours"`
	Total string `yaml:"total"`
	Name  string `yaml:"name"`
}

// DefaultFieldNames matches the stock Timesheet-Fillable.pdf template.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Date:  "Date {n}",
		Time:  "Time {n}",
		Hours: "Hours {n}",
		Total: "Total",
		Name:  "Name",
	}
}

func (f FieldNames) DateField(n int) string  { return lineField(f.Date, n) }
func (f FieldNames) TimeField(n int) string  { return lineField(f.Time, n) }
func (f FieldNames) HoursField(n int) string { return lineField(f.Hours, n) }

func lineField(pattern string, n int) string {
	return strings.ReplaceAll(pattern, lineToken, strconv.Itoa(n))
}

// Policy selects between the behaviours the tool has shipped with over time:
// whether the last line carries the name, whether sentinel cells become a
// placeholder and whether whole hours get a trailing ".0".
type Policy struct {
	// NameLine takes the last non-empty input line as the name.
	NameLine bool
	// FixedName is used when NameLine is off. Empty means no name is written.
	FixedName string
	// SentinelPlaceholder writes Placeholder instead of "X".
	SentinelPlaceholder bool
	// WholeHoursDecimal writes whole hour values with one decimal place.
	WholeHoursDecimal bool
	Placeholder       string
	Fields            FieldNames
}

// DefaultPolicy is the name-line variant with every formatting rule on.
func DefaultPolicy() Policy {
	return Policy{
		NameLine:            true,
		SentinelPlaceholder: true,
		WholeHoursDecimal:   true,
		Placeholder:         DefaultPlaceholder,
		Fields:              DefaultFieldNames(),
	}
}

// RequiresName reports whether validation must insist on a name.
func (p Policy) RequiresName() bool {
	return p.NameLine
}

func (p Policy) placeholder() string {
	if p.Placeholder == "" {
		return DefaultPlaceholder
	}
	return p.Placeholder
}

// TimeText is the value written to a line's time field.
func (p Policy) TimeText(e Entry) string {
	if e.IsSentinelTime() && p.SentinelPlaceholder {
		return p.placeholder()
	}
	return e.TimeRange
}

// HoursText is the value written to a line's hours field.
func (p Policy) HoursText(e Entry) string {
	if e.IsSentinelHours() && p.SentinelPlaceholder {
		return p.placeholder()
	}
	if p.WholeHoursDecimal {
		if v, ok := ParseHours(e.Hours); ok && isWhole(v) {
			return strconv.FormatFloat(v, 'f', 1, 64)
		}
	}
	return e.Hours
}
