package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/timesheet/apperr"
	"github.com/Cortexa-LLC/mcp/src/timesheet/config"
	"github.com/Cortexa-LLC/mcp/src/timesheet/converter"
	"github.com/Cortexa-LLC/mcp/src/timesheet/processor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mattn/go-isatty"
)

// Server identity constants.
const (
	serverName    = "timesheet"
	serverVersion = "0.1.0"
)

// MCP tool parameter keys, shared between schema definitions and argument
// extraction.
const (
	argInput    = "input"
	argContent  = "content"
	argFormat   = "format"
	argOutput   = "output"
	argTemplate = "template"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// newLogger writes to stderr so stdout stays free for the MCP transport.
// Terminals get text, everything else gets JSON.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadConfig reads the environment and applies the profile, if any.
func loadConfig(profile string) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.ApplyProfile(profile); err != nil {
		if profile == "" {
			profile = cfg.ProfilePath
		}
		return nil, apperr.Wrap(err, apperr.ErrProfileInvalid, apperr.CategoryConfig, "Could not load the profile.").
			WithContext("profile", profile)
	}
	return cfg, nil
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, newToolset(cfg, logger))
	logger.Info("serving MCP on stdio", "template", cfg.Template)
	return server.ServeStdio(s)
}

// toolset holds what the MCP handlers need.
type toolset struct {
	proc *processor.Processor
	conv *converter.Converter
}

func newToolset(cfg *config.Config, logger *slog.Logger, opts ...processor.Option) *toolset {
	return &toolset{
		proc: processor.New(cfg, append([]processor.Option{processor.WithLogger(logger)}, opts...)...),
		conv: converter.NewConverter(cfg),
	}
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, t *toolset) {
	// fill_timesheet: fill the template from a file or inline text
	s.AddTool(
		mcp.NewTool("fill_timesheet",
			mcp.WithDescription("Fill the timesheet PDF template from timesheet data and save it. "+
				"Each data line is date,time range,hours; use X for no shift or no hours. "+
				"By default the last non-empty line is the employee name. "+
				"Output formats: pdf, png, jpeg (image output renders page one)."),
			mcp.WithString(argInput,
				mcp.Description("Absolute path or http/https URL of a txt, csv, html or xlsx timesheet"),
			),
			mcp.WithString(argContent,
				mcp.Description("Timesheet text, used when input is not given"),
			),
			mcp.WithString(argFormat,
				mcp.Description("Output format: pdf (default), png or jpeg"),
			),
			mcp.WithString(argOutput,
				mcp.Description("Where to save the result; defaults to filled_timesheet.<ext> in the working directory"),
			),
			mcp.WithString(argTemplate,
				mcp.Description("Template path or URL overriding the configured one"),
			),
		),
		t.fillTimesheet,
	)

	// list_template_fields: show the template's fields and what is missing
	s.AddTool(
		mcp.NewTool("list_template_fields",
			mcp.WithDescription("List the fillable fields of the timesheet template and any expected fields it lacks."),
			mcp.WithString(argTemplate,
				mcp.Description("Template path or URL overriding the configured one"),
			),
		),
		t.listTemplateFields,
	)

	// get_timesheet_info: list formats and configuration
	s.AddTool(
		mcp.NewTool("get_timesheet_info",
			mcp.WithDescription("Return supported input and output formats, the line format, and active configuration."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(t.conv.GetConversionInfo(ctx)), nil
		},
	)
}

func stringArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.Params.Arguments[key].(string)
	return strings.TrimSpace(v)
}

func (t *toolset) fillTimesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := processor.Request{
		InputPath: stringArg(req, argInput),
		Format:    stringArg(req, argFormat),
		Template:  stringArg(req, argTemplate),
	}
	if r.InputPath == "" {
		r.InputText, _ = req.Params.Arguments[argContent].(string)
		if strings.TrimSpace(r.InputText) == "" {
			return mcp.NewToolResultError(argInput + " or " + argContent + " is required"), nil
		}
	}

	res, err := t.proc.Process(ctx, r)
	if err != nil {
		return mcp.NewToolResultError(userMessage(err)), nil
	}

	out := stringArg(req, argOutput)
	if out == "" {
		out = res.Output.Filename
	}
	if err := os.WriteFile(out, res.Output.Data, 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("write %s: %v", out, err)), nil
	}
	if abs, err := filepath.Abs(out); err == nil {
		out = abs
	}

	return mcp.NewToolResultText(fillSummary(res, t.proc, out)), nil
}

func (t *toolset) listTemplateFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := t.proc.InspectTemplate(ctx, stringArg(req, argTemplate))
	if err != nil {
		return mcp.NewToolResultError(userMessage(err)), nil
	}
	return mcp.NewToolResultText(fieldsSummary(info)), nil
}

// fillSummary is the plain text returned by the fill tool and printed by
// the fill command.
func fillSummary(res *processor.Result, p *processor.Processor, path string) string {
	var sb strings.Builder
	sb.WriteString(res.Status)
	sb.WriteString("\n\nSaved to: ")
	sb.WriteString(path)
	sb.WriteString("\n\n")
	sb.WriteString(converter.PreviewTable(res.Document, p.Policy()))
	if res.Report.Dropped > 0 {
		fmt.Fprintf(&sb, "\n%d line(s) past the form's capacity were not placed but count toward the total.\n",
			res.Report.Dropped)
	}
	if !res.Report.OK() {
		sb.WriteString("\nSome fields could not be written:\n")
		for _, e := range res.FieldErrors() {
			fmt.Fprintf(&sb, "- %s %v\n", e.Message, e.Cause)
		}
	}
	return sb.String()
}

func fieldsSummary(info *processor.TemplateInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Template: %s\nPages: %d\nFields: %d\n\n", info.Ref, info.Pages, len(info.Fields))
	for _, f := range info.Fields {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	if len(info.Missing) > 0 {
		fmt.Fprintf(&sb, "\nMissing expected fields (%d):\n", len(info.Missing))
		for _, f := range info.Missing {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	return sb.String()
}

// userMessage prefers the structured message over the raw error chain.
func userMessage(err error) string {
	if e, ok := apperr.As(err); ok {
		return e.UserMessage()
	}
	return err.Error()
}
