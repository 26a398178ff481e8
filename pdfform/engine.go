// Package pdfform fills AcroForm text fields in PDF templates.
//
// Uses github.com/pdfcpu/pdfcpu. Field discovery goes through pdfcpu's JSON
// form export and writes go through its JSON form fill, so the package only
// deals in field names and string values.
package pdfform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrFieldNotFound is returned by SetField for names the template lacks.
	ErrFieldNotFound = errors.New("field not found in template")

	// ErrFieldLocked is returned by SetField for read-only fields.
	ErrFieldLocked = errors.New("field is locked")

	// ErrUnencodable is returned by SetField for values the form's
	// standard fonts cannot draw.
	ErrUnencodable = errors.New("value cannot be encoded in the field font")
)

// exportSource is the source label pdfcpu puts in the export header.
const exportSource = "timesheet-template"

var disableConfigDir sync.Once

// newConfiguration returns a fresh pdfcpu configuration without touching
// the user's pdfcpu config directory.
func newConfiguration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// Engine opens templates. The zero value is ready to use.
type Engine struct{}

// NewEngine returns an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Load implements timesheet.FormLoader.
func (e *Engine) Load(ctx context.Context, data []byte) (timesheet.FormHandle, error) {
	return e.Open(ctx, data)
}

// Open parses data as a PDF and indexes its text fields. A PDF without a
// form opens with no fields; every SetField on it fails.
func (e *Engine) Open(ctx context.Context, data []byte) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	group, err := exportForm(data)
	if err != nil {
		return nil, err
	}

	f := &Form{
		src:    data,
		pages:  pages,
		header: group.Header,
		fields: make(map[string]*fieldRef),
		values: make(map[string]string),
	}
	for _, form := range group.Forms {
		for i := range form.TextFields {
			f.index(kindText, form.TextFields[i])
		}
		for i := range form.DateFields {
			f.index(kindDate, form.DateFields[i])
		}
	}
	return f, nil
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindDate
)

type fieldRef struct {
	kind  fieldKind
	field textField
}

// Form is a template opened for filling. Values are buffered by SetField and
// applied by Serialize; the template bytes are never modified in place.
type Form struct {
	src    []byte
	pages  int
	header json.RawMessage
	fields map[string]*fieldRef
	values map[string]string
}

func (f *Form) index(kind fieldKind, tf textField) {
	if tf.Name == "" {
		return
	}
	if _, dup := f.fields[tf.Name]; dup {
		return
	}
	f.fields[tf.Name] = &fieldRef{kind: kind, field: tf}
}

// PageCount returns the number of pages in the template.
func (f *Form) PageCount() int {
	return f.pages
}

// Fields returns the fillable field names ordered by first page, then by
// name with digit runs compared numerically ("Date 2" before "Date 10").
func (f *Form) Fields() []string {
	refs := make([]*fieldRef, 0, len(f.fields))
	for _, r := range f.fields {
		refs = append(refs, r)
	}
	slices.SortFunc(refs, func(a, b *fieldRef) int {
		if pa, pb := firstPage(a.field), firstPage(b.field); pa != pb {
			return pa - pb
		}
		return compareNatural(a.field.Name, b.field.Name)
	})
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.field.Name
	}
	return names
}

func firstPage(tf textField) int {
	if len(tf.Pages) == 0 {
		return 0
	}
	return slices.Min(tf.Pages)
}

// compareNatural orders strings with runs of ASCII digits compared by value.
func compareNatural(a, b string) int {
	for a != "" && b != "" {
		da, db := digitPrefix(a), digitPrefix(b)
		if da > 0 && db > 0 {
			na, nb := trimZeros(a[:da]), trimZeros(b[:db])
			if len(na) != len(nb) {
				return len(na) - len(nb)
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			a, b = a[da:], b[db:]
			continue
		}
		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return int(ra) - int(rb)
		}
		a, b = a[sa:], b[sb:]
	}
	return len(a) - len(b)
}

func digitPrefix(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

// SetField implements timesheet.FormHandle.
func (f *Form) SetField(name, value string) error {
	ref, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	if ref.field.Locked {
		return fmt.Errorf("%w: %q", ErrFieldLocked, name)
	}
	if r, ok := unencodable(value); ok {
		return fmt.Errorf("%w: %q in field %q", ErrUnencodable, r, name)
	}
	f.values[name] = value
	return nil
}

// unencodable returns the first rune of value outside Windows-1252, the
// encoding of the standard fonts pdfcpu fills with.
func unencodable(value string) (rune, bool) {
	for _, r := range value {
		if r == '\n' || r == '\t' {
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return r, true
		}
	}
	return 0, false
}

// Serialize implements timesheet.FormHandle.
func (f *Form) Serialize() ([]byte, error) {
	if len(f.values) == 0 {
		return append([]byte(nil), f.src...), nil
	}

	var fill formJSON
	for _, name := range f.Fields() {
		v, ok := f.values[name]
		if !ok {
			continue
		}
		ref := f.fields[name]
		tf := ref.field
		tf.Value = v
		switch ref.kind {
		case kindDate:
			fill.DateFields = append(fill.DateFields, tf)
		default:
			fill.TextFields = append(fill.TextFields, tf)
		}
	}

	payload, err := json.Marshal(formGroup{Header: f.header, Forms: []formJSON{fill}})
	if err != nil {
		return nil, fmt.Errorf("encode form values: %w", err)
	}

	var out bytes.Buffer
	if err := api.FillForm(bytes.NewReader(f.src), bytes.NewReader(payload), &out, newConfiguration()); err != nil {
		return nil, fmt.Errorf("fill form: %w", err)
	}
	return out.Bytes(), nil
}

// ReadFields returns the current value of every text field in data.
func ReadFields(data []byte) (map[string]string, error) {
	group, err := exportForm(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for _, form := range group.Forms {
		for _, tf := range form.TextFields {
			out[tf.Name] = tf.Value
		}
		for _, tf := range form.DateFields {
			out[tf.Name] = tf.Value
		}
	}
	return out, nil
}
