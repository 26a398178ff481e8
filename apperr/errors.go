// Package apperr provides the structured error type returned at the
// user-facing boundaries of the timesheet filler (CLI and MCP tools).
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category classifies errors by the stage of the pipeline that produced them.
type Category string

const (
	CategoryInput         Category = "input"          // malformed records or missing name
	CategoryTemplateFetch Category = "template_fetch" // template could not be retrieved
	CategoryTemplateLoad  Category = "template_load"  // template bytes are not a usable PDF
	CategoryFieldWrite    Category = "field_write"    // a single form field could not be written
	CategoryRasterize     Category = "rasterize"      // image output could not be produced
	CategoryConfig        Category = "config"         // profile or flag problems
)

// Error is a structured error with a stable code, a user-facing message and
// optional remediation hints.
type Error struct {
	Code        string
	Category    Category
	Message     string
	Context     map[string]string
	Cause       error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an Error with the given code, category and message.
func New(code string, category Category, message string) *Error {
	return &Error{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Wrap creates an Error that wraps cause.
func Wrap(cause error, code string, category Category, message string) *Error {
	e := New(code, category, message)
	e.Cause = cause
	return e
}

// WithContext adds a key-value detail and returns e for chaining.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion appends a remediation hint and returns e for chaining.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// ContextString formats the context entries in key order.
func (e *Error) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
	}
	return strings.Join(parts, ", ")
}

// UserMessage returns the message meant for the person running the tool,
// followed by any suggestions.
func (e *Error) UserMessage() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, s := range e.Suggestions {
		sb.WriteString("\n  - ")
		sb.WriteString(s)
	}
	return sb.String()
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCategory reports whether err carries an *Error of the given category.
func IsCategory(err error, c Category) bool {
	e, ok := As(err)
	return ok && e.Category == c
}
