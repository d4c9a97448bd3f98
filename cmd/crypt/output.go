package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"crypt/internal/diag"
	"crypt/internal/diagfmt"
	"crypt/internal/observ"
	"crypt/internal/source"
)

type valueFormat string

const (
	formatTree    valueFormat = "tree"
	formatJSON    valueFormat = "json"
	formatMsgpack valueFormat = "msgpack"
	formatYAML    valueFormat = "yaml"
)

func readValueFormat(value string) (valueFormat, error) {
	switch f := valueFormat(strings.TrimSpace(strings.ToLower(value))); f {
	case formatTree, formatJSON, formatMsgpack, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected tree|json|yaml|msgpack)", value)
	}
}

type diagFormat string

const (
	diagFormatPretty diagFormat = "pretty"
	diagFormatJSON   diagFormat = "json"
)

func readDiagFormat(value string) (diagFormat, error) {
	switch f := diagFormat(strings.TrimSpace(strings.ToLower(value))); f {
	case "":
		return diagFormatPretty, nil
	case diagFormatPretty, diagFormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown diagnostics format %q (expected pretty|json)", value)
	}
}

// globalFlags collects the persistent flags every command reads.
type globalFlags struct {
	color          autoMode
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     diagFormat
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var g globalFlags

	colorStr, err := flags.GetString("color")
	if err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.color, err = readAutoMode("color", colorStr); err != nil {
		return g, err
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.maxDiagnostics < 0 {
		return g, fmt.Errorf("--max-diagnostics must not be negative")
	}
	formatStr, err := flags.GetString("diagnostics-format")
	if err != nil {
		return g, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	if g.diagFormat, err = readDiagFormat(formatStr); err != nil {
		return g, err
	}
	return g, nil
}

func (g globalFlags) useColor(f *os.File) bool {
	return g.color.resolve(f)
}

// visibleDiagnostics sorts bag and returns what should be shown: nil when
// nothing is, only errors in quiet mode.
func visibleDiagnostics(g globalFlags, bag *diag.Bag) *diag.Bag {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if g.quiet && !bag.HasErrors() {
		return nil
	}
	bag.Sort()
	if !g.quiet {
		return bag
	}
	errorsOnly := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity.AtLeast(diag.SevError) {
			errorsOnly.Add(d)
		}
	}
	return errorsOnly
}

func (g globalFlags) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: g.maxDiagnostics}
}

// printDiagnostics prints bag to stderr as text or as one JSON document.
func printDiagnostics(cmd *cobra.Command, g globalFlags, bag *diag.Bag, fs *source.FileSet) {
	bag = visibleDiagnostics(g, bag)
	if bag == nil {
		return
	}
	if g.diagFormat == diagFormatJSON {
		if err := diagfmt.JSON(cmd.ErrOrStderr(), bag, fs, g.jsonOpts()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write diagnostics: %v\n", err)
		}
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     g.useColor(os.Stderr),
		Context:   1,
		ShowNotes: true,
	})
}

func printTimings(out io.Writer, g globalFlags, report observ.Report) {
	if !g.timings || len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(out, report.String())
}
