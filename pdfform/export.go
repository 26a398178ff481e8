package pdfform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// formGroup mirrors the JSON document pdfcpu exports and fills. Only text
// and date fields are modelled; other field kinds are left untouched.
type formGroup struct {
	Header json.RawMessage `json:"header,omitempty"`
	Forms  []formJSON      `json:"forms"`
}

type formJSON struct {
	TextFields []textField `json:"textfield,omitempty"`
	DateFields []textField `json:"datefield,omitempty"`
}

type textField struct {
	Pages     []int  `json:"pages,omitempty"`
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Format    string `json:"format,omitempty"`
	Default   string `json:"default,omitempty"`
	Value     string `json:"value"`
	Multiline bool   `json:"multiline,omitempty"`
	Locked    bool   `json:"locked"`
}

// noFormMessage is how pdfcpu reports a document without an AcroForm.
const noFormMessage = "no form available"

// exportForm returns the form fields of data. A PDF without an AcroForm
// yields an empty group.
func exportForm(data []byte) (*formGroup, error) {
	var buf bytes.Buffer
	if err := api.ExportFormJSON(bytes.NewReader(data), &buf, exportSource, newConfiguration()); err != nil {
		if strings.Contains(err.Error(), noFormMessage) {
			return &formGroup{}, nil
		}
		return nil, fmt.Errorf("export form: %w", err)
	}
	var group formGroup
	if err := json.Unmarshal(buf.Bytes(), &group); err != nil {
		return nil, fmt.Errorf("decode form export: %w", err)
	}
	return &group, nil
}
