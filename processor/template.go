package processor

import (
	"context"

	"github.com/Cortexa-LLC/mcp/src/timesheet/apperr"
	"github.com/Cortexa-LLC/mcp/src/timesheet/converter"
	"github.com/Cortexa-LLC/mcp/src/timesheet/pdfform"
	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
)

// TemplateInfo describes a template and how well it matches the policy's
// field naming convention.
type TemplateInfo struct {
	Ref       string
	Pages     int
	FirstPage string
	Fields    []string
	Missing   []string // expected by the policy, absent from the template
}

// InspectTemplate fetches and opens the template (override or configured)
// and checks it against the expected field names.
func (p *Processor) InspectTemplate(ctx context.Context, override string) (*TemplateInfo, error) {
	data, err := p.fetchTemplate(ctx, override)
	if err != nil {
		return nil, err
	}
	ref := p.templateRef(override)

	form, err := pdfform.NewEngine().Open(ctx, data)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrTemplateLoad, apperr.CategoryTemplateLoad, apperr.MsgTemplateLoad).
			WithContext("template", ref)
	}

	info := &TemplateInfo{Ref: ref, Pages: form.PageCount(), Fields: form.Fields()}
	if text, err := converter.InspectPDF(data); err == nil {
		info.FirstPage = text.FirstPage
	} else {
		p.logger.WarnContext(ctx, "template text extraction failed", "template", ref, "error", err)
	}

	have := make(map[string]bool, len(info.Fields))
	for _, f := range info.Fields {
		have[f] = true
	}
	for _, want := range ExpectedFields(p.policy) {
		if !have[want] {
			info.Missing = append(info.Missing, want)
		}
	}
	return info, nil
}

// ExpectedFields lists every field name the policy may write.
func ExpectedFields(pol timesheet.Policy) []string {
	names := make([]string, 0, timesheet.MaxLines*3+2)
	for n := 1; n <= timesheet.MaxLines; n++ {
		names = append(names, pol.Fields.DateField(n), pol.Fields.TimeField(n), pol.Fields.HoursField(n))
	}
	names = append(names, pol.Fields.Total)
	if pol.NameLine || pol.FixedName != "" {
		names = append(names, pol.Fields.Name)
	}
	return names
}
