package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"crypt/internal/driver"
	"crypt/internal/parser"
	"crypt/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show crypt build and document format information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("build", false, "include commit, commit message and build date")
}

// versionReport describes the binary and the documents it reads.
type versionReport struct {
	Tool          string `json:"tool"`
	Version       string `json:"version"`
	Go            string `json:"go"`
	FileExtension string `json:"file_extension"`
	MaxDepth      int    `json:"default_max_depth"`
	CacheSchema   uint16 `json:"cache_schema"`
	GitCommit     string `json:"git_commit,omitempty"`
	GitMessage    string `json:"git_message,omitempty"`
	BuildDate     string `json:"build_date,omitempty"`
}

func newVersionReport(withBuild bool) versionReport {
	r := versionReport{
		Tool:          "crypt",
		Version:       orUnknown(version.Version),
		Go:            runtime.Version(),
		FileExtension: driver.FileExt,
		MaxDepth:      parser.DefaultMaxDepth,
		CacheSchema:   driver.CacheSchemaVersion,
	}
	if withBuild {
		r.GitCommit = orUnknown(version.GitCommit)
		r.GitMessage = orUnknown(version.GitMessage)
		r.BuildDate = orUnknown(version.BuildDate)
	}
	return r
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withBuild, err := cmd.Flags().GetBool("build")
	if err != nil {
		return fmt.Errorf("failed to get build flag: %w", err)
	}
	report := newVersionReport(withBuild)

	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty":
		writeVersionPretty(out, report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func writeVersionPretty(out io.Writer, r versionReport) {
	fmt.Fprintf(out, "crypt %s (%s)\n", version.Colored(), r.Go)
	fmt.Fprintf(out, "documents: *%s, nesting up to %d\n", r.FileExtension, r.MaxDepth)
	fmt.Fprintf(out, "cache:     schema %d\n", r.CacheSchema)
	if r.GitCommit == "" {
		return
	}
	fmt.Fprintf(out, "commit:    %s\n", r.GitCommit)
	fmt.Fprintf(out, "message:   %s\n", r.GitMessage)
	fmt.Fprintf(out, "built:     %s\n", r.BuildDate)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
