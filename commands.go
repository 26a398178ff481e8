package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/timesheet/apperr"
	"github.com/Cortexa-LLC/mcp/src/timesheet/config"
	"github.com/Cortexa-LLC/mcp/src/timesheet/converter"
	"github.com/Cortexa-LLC/mcp/src/timesheet/processor"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand. It is populated in the
// root PersistentPreRunE.
type app struct {
	profile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Fill a timesheet PDF form from delimited time records",
		Long:          "Without a subcommand the tool serves its MCP tools over stdio.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.profile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.logger == nil {
				a.logger = newLogger(cfg.LogLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(a.cfg, a.logger)
		},
	}
	root.PersistentFlags().StringVar(&a.profile, "profile", "", "YAML profile (default $"+config.EnvProfile+")")

	root.AddCommand(
		newServeCmd(a),
		newFillCmd(a),
		newParseCmd(a),
		newFieldsCmd(a),
		newInfoCmd(a),
	)
	return root
}

func (a *app) processor() *processor.Processor {
	return processor.New(a.cfg, processor.WithLogger(a.logger))
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(a.cfg, a.logger)
		},
	}
}

// readRequest fills r from --input, or from stdin when input is "-".
func readRequest(r *processor.Request, input string, stdin io.Reader) error {
	if input != "-" {
		r.InputPath = input
		return nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrInputUnreadable, apperr.CategoryInput, "Could not read standard input.")
	}
	r.InputText = string(data)
	return nil
}

func newFillCmd(a *app) *cobra.Command {
	var input, format, out, template string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the template and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := processor.Request{Format: format, Template: template}
			if err := readRequest(&req, input, cmd.InOrStdin()); err != nil {
				return err
			}

			p := a.processor()
			res, err := p.Process(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out == "" {
				out = res.Output.Filename
			}
			if err := os.WriteFile(out, res.Output.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styleOK.Render(res.Status))
			fmt.Fprintln(w, styleDim.Render("Saved to "+out))
			fmt.Fprintln(w)
			fmt.Fprint(w, converter.PreviewTable(res.Document, p.Policy()))
			if res.Report.Dropped > 0 {
				fmt.Fprintln(w, styleWarn.Render(fmt.Sprintf(
					"%d line(s) past the form's capacity were not placed but count toward the total.", res.Report.Dropped)))
			}
			for _, e := range res.FieldErrors() {
				fmt.Fprintln(w, styleWarn.Render("! "+e.Message)+" "+styleDim.Render(e.Cause.Error()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "timesheet file, URL, or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "output format: pdf, png or jpeg")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default filled_timesheet.<ext>)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template path or URL (default $"+config.EnvTemplate+")")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var input, format string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse and validate a timesheet without filling the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req processor.Request
			if err := readRequest(&req, input, cmd.InOrStdin()); err != nil {
				return err
			}

			p := a.processor()
			doc, err := p.Parse(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "markdown", "md":
				fmt.Fprint(w, converter.PreviewTable(doc, p.Policy()))
			case "csv":
				s, err := converter.EncodeCSV(doc.Entries)
				if err != nil {
					return err
				}
				fmt.Fprint(w, s)
			default:
				return apperr.New(apperr.ErrUnsupportedFormat, apperr.CategoryConfig,
					fmt.Sprintf("Unknown parse output %q.", format)).
					WithSuggestion("Use markdown or csv.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "timesheet file, URL, or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output: markdown or csv")
	return cmd
}

func newFieldsCmd(a *app) *cobra.Command {
	var template string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the template's form fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.processor().InspectTemplate(cmd.Context(), template)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, fieldsSummary(info))
			if len(info.Missing) == 0 {
				fmt.Fprintln(w, styleOK.Render("Template has every expected field."))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template path or URL (default $"+config.EnvTemplate+")")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	var template string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show formats, configuration and template text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, converter.NewConverter(a.cfg).GetConversionInfo(cmd.Context()))

			info, err := a.processor().InspectTemplate(cmd.Context(), template)
			if err != nil {
				fmt.Fprintln(w)
				fmt.Fprintln(w, renderError(err))
				return nil
			}
			fmt.Fprintf(w, "\n## Template\n- Pages: %d\n- Fields: %d\n- Missing fields: %d\n",
				info.Pages, len(info.Fields), len(info.Missing))
			if text := strings.TrimSpace(info.FirstPage); text != "" {
				fmt.Fprintf(w, "\n## First Page Text\n%s\n", text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "", "template path or URL (default $"+config.EnvTemplate+")")
	return cmd
}
