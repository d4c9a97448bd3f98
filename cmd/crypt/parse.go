package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crypt/internal/diagfmt"
	"crypt/internal/driver"
	"crypt/internal/trace"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.crypt",
	Short: "Parse a crypt document and print its value",
	Long: `Parse reads a crypt document and prints the resulting value as a tree,
JSON or MessagePack. A document starting with "key =" is an implicit table.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", string(formatTree), "output format (tree|json|yaml|msgpack)")
	parseCmd.Flags().Bool("lenient", false, "accept missing separators between elements with a warning")
	parseCmd.Flags().Int("max-depth", 0, "maximum object nesting depth (0 = default)")
	parseCmd.Flags().Bool("cache", false, "reuse parsed values from the on-disk cache")
}

// readParseOptions builds driver options from the parse flags shared by
// parse and check.
func readParseOptions(cmd *cobra.Command, g globalFlags) (driver.ParseOptions, error) {
	opts := driver.ParseOptions{
		MaxDiagnostics: g.maxDiagnostics,
		Tracer:         trace.FromContext(cmd.Context()),
		TraceParent:    trace.SpanFromContext(cmd.Context()).ID(),
	}
	var err error
	if opts.Lenient, err = cmd.Flags().GetBool("lenient"); err != nil {
		return opts, fmt.Errorf("failed to get lenient flag: %w", err)
	}
	if opts.MaxDepth, err = cmd.Flags().GetInt("max-depth"); err != nil {
		return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if opts.MaxDepth < 0 {
		return opts, fmt.Errorf("--max-depth must not be negative")
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		if opts.Cache, err = driver.OpenParseCache("crypt"); err != nil {
			return opts, fmt.Errorf("failed to open parse cache: %w", err)
		}
	}
	return opts, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readValueFormat(formatStr)
	if err != nil {
		return err
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := readParseOptions(cmd, g)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], opts)
	if result != nil {
		printDiagnostics(cmd, g, result.Bag, result.FileSet)
		printTimings(cmd.ErrOrStderr(), g, result.Timing)
	}
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return diagfmt.FormatValueJSON(out, result.Value)
	case formatYAML:
		return diagfmt.FormatValueYAML(out, result.Value)
	case formatMsgpack:
		return diagfmt.FormatValueMsgpack(out, result.Value)
	default:
		return diagfmt.FormatValueTree(out, result.Value, diagfmt.TreeOpts{Color: g.useColor(os.Stdout)})
	}
}
