package timesheet

import (
	"errors"
	"fmt"
	"log/slog"
)

// FieldWrite records a value that was written to the form.
type FieldWrite struct {
	Field string
	Value string
}

// FieldFailure records a field that could not be written.
type FieldFailure struct {
	Field string
	Err   error
}

func (f FieldFailure) Error() string {
	return fmt.Sprintf("field %q: %v", f.Field, f.Err)
}

// Report is the outcome of a Fill pass.
type Report struct {
	Written  []FieldWrite
	Failures []FieldFailure
	Lines    int    // entries placed on the form
	Dropped  int    // entries past MaxLines
	Total    string // formatted total written to the total field
}

// OK reports whether every field write succeeded.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins the per-field failures, or returns nil.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Value returns the value written to field, if any.
func (r Report) Value(field string) (string, bool) {
	for _, w := range r.Written {
		if w.Field == field {
			return w.Value, true
		}
	}
	return "", false
}

// Fill writes the document into form. Every field is attempted on its own:
// a failed write is logged and recorded in the report, and filling carries
// on with the next field. Fill does not serialize the form.
func Fill(form FormHandle, doc Document, p Policy, logger *slog.Logger) Report {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var r Report
	set := func(field, value string) {
		if err := form.SetField(field, value); err != nil {
			logger.Warn("field write failed", "field", field, "error", err)
			r.Failures = append(r.Failures, FieldFailure{Field: field, Err: err})
			return
		}
		r.Written = append(r.Written, FieldWrite{Field: field, Value: value})
	}

	rendered := doc.Rendered()
	for i, e := range rendered {
		n := i + 1
		set(p.Fields.DateField(n), e.Date)
		set(p.Fields.TimeField(n), p.TimeText(e))
		set(p.Fields.HoursField(n), p.HoursText(e))
		logger.Debug("filled line", "line", n, "date", e.Date, "time", e.TimeRange, "hours", e.Hours)
	}
	r.Lines = len(rendered)
	r.Dropped = doc.Dropped()
	if r.Dropped > 0 {
		logger.Warn("entries exceed template capacity", "capacity", MaxLines, "dropped", r.Dropped)
	}

	r.Total = FormatTotal(TotalHours(doc.Entries))
	set(p.Fields.Total, r.Total)

	if doc.HasName() {
		set(p.Fields.Name, doc.Name)
	}

	logger.Info("form filled", "lines", r.Lines, "total", r.Total, "failures", len(r.Failures))
	return r
}
