package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/argot/cli/cmd/repl"
	"github.com/ardnew/argot/log"
)

// Parse parses a command line against the definition and reports the result.
type Parse struct {
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Args   []string `arg:""         help:"Command line to parse." optional:"" passthrough:""`
}

// Run executes the parse command. It returns [ErrParse] if the command line
// has errors, after reporting them.
func (p *Parse) Run(ctx context.Context) error {
	root, err := definitionFrom(ctx)
	if err != nil {
		return err
	}

	r := parser(root).Parse(ctx, p.Args)
	w := outputFrom(ctx)

	switch p.Format {
	case "json":
		data, err := json.MarshalIndent(r.Summary(), "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

	case "yaml":
		data, err := yaml.MarshalContext(ctx, r.Summary(), yaml.Indent(2))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		if _, err := w.Write(data); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

	default:
		palette := repl.NewPalette(lipgloss.NewRenderer(w))
		if _, err := fmt.Fprintln(w, repl.Report(r, palette)); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	if n := len(r.Errors()); n > 0 {
		log.DebugContext(ctx, "parse failed", slog.Any("result", r))

		return ErrParse.With(slog.Int("errors", n)).Wrap(r.Err())
	}

	return nil
}
