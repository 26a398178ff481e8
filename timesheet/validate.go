package timesheet

import (
	"fmt"
	"strings"
)

// Validate checks the parsed document and returns every problem found.
// An empty result means the document may be filled.
func Validate(doc Document, p Policy) []error {
	var errs []error

	for i, e := range doc.Entries {
		errs = append(errs, validateEntry(i+1, e)...)
	}
	if p.RequiresName() && !doc.HasName() {
		errs = append(errs, fmt.Errorf("name line is required"))
	}

	return errs
}

func validateEntry(line int, e Entry) []error {
	var errs []error

	if e.Date == "" {
		errs = append(errs, fmt.Errorf("line %d: date is required", line))
	}
	if e.TimeRange == "" {
		errs = append(errs, fmt.Errorf("line %d: time range is required", line))
	}
	switch {
	case e.Hours == "":
		errs = append(errs, fmt.Errorf("line %d: hours is required", line))
	case e.Hours == Sentinel:
	default:
		if _, ok := ParseHours(e.Hours); !ok {
			errs = append(errs, fmt.Errorf("line %d: hours %q is not a number or %q", line, e.Hours, Sentinel))
		}
	}

	return errs
}

// JoinProblems formats validation problems one per line.
func JoinProblems(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n")
}
