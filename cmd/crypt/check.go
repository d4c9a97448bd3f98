package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"crypt/internal/diagfmt"
	"crypt/internal/driver"
	"crypt/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] PATH...",
	Short: "Parse crypt documents in parallel and report problems",
	Long: `Check parses every given file and every *.crypt file under the given
directories, prints their diagnostics and fails if any document is invalid`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	checkCmd.Flags().String("ui", string(modeAuto), "progress view (auto|on|off)")
	checkCmd.Flags().Bool("lenient", false, "accept missing separators between elements with a warning")
	checkCmd.Flags().Int("max-depth", 0, "maximum object nesting depth (0 = default)")
	checkCmd.Flags().Bool("cache", false, "reuse parsed values from the on-disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readAutoMode("ui", uiStr)
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

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *%s files found", driver.FileExt)
	}

	var results []driver.FileResult
	if useProgressView(mode, g, len(files)) {
		results, err = runCheckWithUI(cmd.Context(), "check", files, opts, jobs)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), files, opts, jobs)
	}
	if err != nil {
		return err
	}

	printCheckTimings(cmd.ErrOrStderr(), g, results)
	if err := reportCheckDiagnostics(cmd, g, results); err != nil {
		return err
	}

	sum := driver.Summarize(results)
	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d failed, %d cached, %d warnings\n",
			sum.Files, sum.Failed, sum.Cached, sum.Warnings)
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", sum.Failed, sum.Files)
	}
	return nil
}

// printCheckTimings prints the phases of every parsed file and, for more
// than one file, their sum.
func printCheckTimings(out io.Writer, g globalFlags, results []driver.FileResult) {
	if !g.timings {
		return
	}
	var total observ.Report
	timed := 0
	for _, r := range results {
		if r.Result == nil || len(r.Result.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s ", r.Path)
		printTimings(out, g, r.Result.Timing)
		total = total.Merge(r.Result.Timing)
		timed++
	}
	if timed > 1 {
		fmt.Fprintf(out, "%d files ", timed)
		printTimings(out, g, total)
	}
}

// reportCheckDiagnostics prints per-file diagnostics; in JSON mode all files
// go into a single document.
func reportCheckDiagnostics(cmd *cobra.Command, g globalFlags, results []driver.FileResult) error {
	if g.diagFormat == diagFormatJSON {
		var out diagfmt.DiagnosticsOutput
		for _, r := range results {
			bag := visibleDiagnostics(g, r.Bag)
			if bag == nil {
				continue
			}
			out.Append(diagfmt.BuildDiagnosticsOutput(bag, r.FileSet(), g.jsonOpts()), r.Path)
		}
		return out.WriteJSON(cmd.ErrOrStderr())
	}
	for _, r := range results {
		fs := r.FileSet()
		if fs == nil {
			// без FileSet позиции не распечатать
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		printDiagnostics(cmd, g, r.Bag, fs)
	}
	return nil
}
