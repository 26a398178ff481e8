package timesheet

import (
	"fmt"
	"sort"
)

// fakeForm is an in-memory FormHandle with a fixed set of field names.
type fakeForm struct {
	fields map[string]string
	broken map[string]bool
}

func newFakeForm(names ...string) *fakeForm {
	f := &fakeForm{fields: make(map[string]string), broken: make(map[string]bool)}
	for _, n := range names {
		f.fields[n] = ""
	}
	return f
}

// stockForm exposes every field of the default template.
func stockForm() *fakeForm {
	names := DefaultFieldNames()
	var all []string
	for n := 1; n <= MaxLines; n++ {
		all = append(all, names.DateField(n), names.TimeField(n), names.HoursField(n))
	}
	all = append(all, names.Total, names.Name)
	return newFakeForm(all...)
}

func (f *fakeForm) without(name string) *fakeForm {
	delete(f.fields, name)
	return f
}

func (f *fakeForm) SetField(name, value string) error {
	if f.broken[name] {
		return fmt.Errorf("field %q is read-only", name)
	}
	if _, ok := f.fields[name]; !ok {
		return fmt.Errorf("no field named %q", name)
	}
	f.fields[name] = value
	return nil
}

func (f *fakeForm) Serialize() ([]byte, error) {
	keys := make([]string, 0, len(f.fields))
	for k := range f.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []byte
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s\n", k, f.fields[k])...)
	}
	return out, nil
}
