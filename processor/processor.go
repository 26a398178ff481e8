// Package processor runs one timesheet through the whole pipeline: read the
// input, parse and validate it, fetch and load the template, fill the form
// and deliver it in the requested format.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Cortexa-LLC/mcp/src/timesheet/apperr"
	"github.com/Cortexa-LLC/mcp/src/timesheet/config"
	"github.com/Cortexa-LLC/mcp/src/timesheet/converter"
	"github.com/Cortexa-LLC/mcp/src/timesheet/pdfform"
	"github.com/Cortexa-LLC/mcp/src/timesheet/raster"
	"github.com/Cortexa-LLC/mcp/src/timesheet/timesheet"
	"github.com/google/uuid"
)

// Request describes one fill run. InputPath (a path or URI) wins over
// InputText. Template overrides the configured template when set.
type Request struct {
	InputPath string
	InputText string
	Format    string
	Template  string
}

// Result is the outcome of a successful run.
type Result struct {
	RunID    string
	Document timesheet.Document
	Report   timesheet.Report
	Output   *raster.Output
	Status   string
}

// FieldErrors returns the field write failures of the run as structured
// errors, in the order the writes were attempted.
func (r *Result) FieldErrors() []*apperr.Error {
	errs := make([]*apperr.Error, len(r.Report.Failures))
	for i, f := range r.Report.Failures {
		errs[i] = apperr.Wrap(f.Err, apperr.ErrFieldWrite, apperr.CategoryFieldWrite,
			fmt.Sprintf("Could not write field %q.", f.Field)).
			WithContext("field", f.Field)
	}
	return errs
}

// Processor holds the collaborators of the pipeline. It keeps no state
// between runs and is safe for sequential reuse.
type Processor struct {
	cfg    *config.Config
	policy timesheet.Policy
	conv   *converter.Converter
	loader timesheet.FormLoader
	raster raster.Rasterizer
	client *http.Client
	logger *slog.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithLoader replaces the PDF engine.
func WithLoader(l timesheet.FormLoader) Option {
	return func(p *Processor) { p.loader = l }
}

// WithRasterizer replaces the page renderer.
func WithRasterizer(r raster.Rasterizer) Option {
	return func(p *Processor) { p.raster = r }
}

// WithHTTPClient sets the client used to fetch http(s) templates.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Processor) { p.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithPolicy overrides the policy derived from cfg.
func WithPolicy(pol timesheet.Policy) Option {
	return func(p *Processor) { p.policy = pol }
}

// New wires a Processor from cfg. Defaults: pdfcpu engine, Ghostscript
// renderer, http.DefaultClient, discarded logs.
func New(cfg *config.Config, opts ...Option) *Processor {
	p := &Processor{
		cfg:    cfg,
		policy: cfg.Policy(),
		conv:   converter.NewConverter(cfg),
		loader: pdfform.NewEngine(),
		raster: raster.NewGhostscript(cfg.Ghostscript),
		client: http.DefaultClient,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy returns the active fill policy.
func (p *Processor) Policy() timesheet.Policy {
	return p.policy
}

// Parse reads, parses and validates the input of req. Validation problems
// come back as a single input error listing every problem.
func (p *Processor) Parse(ctx context.Context, req Request) (timesheet.Document, error) {
	text := req.InputText
	if req.InputPath != "" {
		var err error
		text, err = p.conv.Read(ctx, req.InputPath)
		if err != nil {
			return timesheet.Document{}, inputReadError(err, req.InputPath)
		}
	}

	doc := timesheet.Parse(text, p.policy)
	if problems := timesheet.Validate(doc, p.policy); len(problems) > 0 {
		e := apperr.New(apperr.ErrInvalidInput, apperr.CategoryInput, apperr.MsgInvalidInput).
			WithContext("problems", fmt.Sprint(len(problems)))
		for _, prob := range problems {
			e.WithSuggestion(prob.Error())
		}
		return doc, e
	}
	return doc, nil
}

// Process runs the full pipeline. Nothing is fetched or loaded until the
// input has validated; once the template is loaded, field write failures
// are reported in Result.Report rather than failing the run.
func (p *Processor) Process(ctx context.Context, req Request) (res *Result, err error) {
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)
	start := time.Now()
	defer func() {
		attrs := []any{"duration_ms", time.Since(start).Milliseconds(), "success", err == nil}
		if err != nil {
			log.ErrorContext(ctx, "timesheet_process", append(attrs, "error", err.Error())...)
			return
		}
		attrs = append(attrs, "format", string(res.Output.Format), "field_failures", len(res.Report.Failures))
		log.InfoContext(ctx, "timesheet_process", attrs...)
	}()

	format, err := p.format(req.Format)
	if err != nil {
		return nil, err
	}

	doc, err := p.Parse(ctx, req)
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "input parsed", "entries", len(doc.Entries), "name", doc.Name)

	form, err := p.loadTemplate(ctx, req.Template, log)
	if err != nil {
		return nil, err
	}

	report := timesheet.Fill(form, doc, p.policy, log)

	filled, err := form.Serialize()
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrSerialize, apperr.CategoryTemplateLoad, "Failed to save the filled PDF document.")
	}

	out, err := raster.Render(ctx, p.raster, filled, format)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrRasterize, apperr.CategoryRasterize,
			fmt.Sprintf("Failed to convert the PDF to %s.", strings.ToUpper(string(format)))).
			WithSuggestion("Install Ghostscript or request pdf output.")
	}

	return &Result{
		RunID:    runID,
		Document: doc,
		Report:   report,
		Output:   out,
		Status:   fmt.Sprintf("PDF filled and downloaded as %s successfully!", strings.ToUpper(string(format))),
	}, nil
}

func (p *Processor) format(s string) (raster.Format, error) {
	f, err := raster.ParseFormat(s)
	if err != nil {
		return "", apperr.Wrap(err, apperr.ErrUnsupportedFormat, apperr.CategoryConfig, "Unsupported output format.").
			WithSuggestion("Use one of: " + strings.Join(p.cfg.Formats(), ", "))
	}
	if !slices.Contains(p.cfg.Formats(), string(f)) {
		return "", apperr.New(apperr.ErrUnsupportedFormat, apperr.CategoryConfig,
			fmt.Sprintf("Output format %s is disabled.", f)).
			WithSuggestion("Use one of: " + strings.Join(p.cfg.Formats(), ", "))
	}
	return f, nil
}

func (p *Processor) templateRef(override string) string {
	if override != "" {
		return override
	}
	return p.cfg.Template
}

func (p *Processor) fetchTemplate(ctx context.Context, override string) ([]byte, error) {
	ref := p.templateRef(override)
	src, err := pdfform.NewSource(ref, p.cfg.MaxFileSizeBytes, p.client)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrTemplateFetch, apperr.CategoryTemplateFetch, apperr.MsgTemplateFetch).
			WithContext("template", ref)
	}
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrTemplateFetch, apperr.CategoryTemplateFetch, apperr.MsgTemplateFetch).
			WithContext("template", src.String())
	}
	return data, nil
}

func (p *Processor) loadTemplate(ctx context.Context, override string, log *slog.Logger) (timesheet.FormHandle, error) {
	data, err := p.fetchTemplate(ctx, override)
	if err != nil {
		return nil, err
	}
	log.DebugContext(ctx, "template fetched", "bytes", len(data))

	form, err := p.loader.Load(ctx, data)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrTemplateLoad, apperr.CategoryTemplateLoad, apperr.MsgTemplateLoad).
			WithContext("template", p.templateRef(override))
	}
	return form, nil
}

func inputReadError(err error, ref string) error {
	if errors.Is(err, converter.ErrTooLarge) {
		return apperr.Wrap(err, apperr.ErrInputTooLarge, apperr.CategoryInput, "Input file is too large.").
			WithContext("input", ref)
	}
	e := apperr.Wrap(err, apperr.ErrInputUnreadable, apperr.CategoryInput, "Could not read the input file.").
		WithContext("input", ref)
	if errors.Is(err, converter.ErrUnsupported) {
		e.WithSuggestion("Supported inputs: txt, csv, html, xlsx.")
	}
	return e
}
