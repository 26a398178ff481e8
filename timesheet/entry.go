// Package timesheet holds the record model of a timesheet and the rules for
// turning it into form field values: parsing delimited text, validating the
// records, summing hours and writing the numbered fields of a fillable form.
//
// PDF handling is not done here. The package talks to a form through the
// FormHandle interface so it can be exercised with in-memory fakes.
package timesheet

import "strings"

// Sentinel marks a time range or hours cell as "not applicable".
const Sentinel = "X"

// MaxLines is the number of numbered line slots on the template.
const MaxLines = 14

// Entry is one row of the timesheet.
type Entry struct {
	Date      string `csv:"date" json:"date"`
	TimeRange string `csv:"time_range" json:"time_range"`
	Hours     string `csv:"hours" json:"hours"`
}

// IsSentinelHours reports whether the entry has no hours logged.
func (e Entry) IsSentinelHours() bool {
	return e.Hours == Sentinel
}

// IsSentinelTime reports whether the entry has no shift logged.
func (e Entry) IsSentinelTime() bool {
	return e.TimeRange == Sentinel
}

// Document is the parsed timesheet handed to the filling stage. Entries keep
// input order; an entry's 1-based position is its line number on the form.
type Document struct {
	Entries []Entry
	Name    string
}

// Rendered returns the entries that fit on the template.
func (d Document) Rendered() []Entry {
	if len(d.Entries) > MaxLines {
		return d.Entries[:MaxLines]
	}
	return d.Entries
}

// Dropped returns how many entries exceed the template capacity.
func (d Document) Dropped() int {
	if n := len(d.Entries) - MaxLines; n > 0 {
		return n
	}
	return 0
}

// HasName reports whether the document carries a non-blank name.
func (d Document) HasName() bool {
	return strings.TrimSpace(d.Name) != ""
}
