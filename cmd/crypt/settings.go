package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const settingsFileName = "crypt.toml"

// fileSettings mirrors crypt.toml.
type fileSettings struct {
	Output      outputSettings      `toml:"output"`
	Parse       parseSettings       `toml:"parse"`
	Diagnostics diagnosticsSettings `toml:"diagnostics"`
}

type outputSettings struct {
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

type parseSettings struct {
	Lenient  bool `toml:"lenient"`
	MaxDepth int  `toml:"max_depth"`
	Cache    bool `toml:"cache"`
}

type diagnosticsSettings struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"`
}

func findSettingsFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, settingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadSettingsFile(path string) (fileSettings, toml.MetaData, error) {
	var cfg fileSettings
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileSettings{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fileSettings{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "color") {
		if _, err := readAutoMode("color", cfg.Output.Color); err != nil {
			return fileSettings{}, meta, fmt.Errorf("%s: [output].color: %w", path, err)
		}
	}
	if meta.IsDefined("output", "format") {
		if _, err := readValueFormat(cfg.Output.Format); err != nil {
			return fileSettings{}, meta, fmt.Errorf("%s: [output].format: %w", path, err)
		}
	}
	if meta.IsDefined("parse", "max_depth") && cfg.Parse.MaxDepth < 0 {
		return fileSettings{}, meta, fmt.Errorf("%s: [parse].max_depth must not be negative", path)
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max < 0 {
		return fileSettings{}, meta, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if meta.IsDefined("diagnostics", "format") {
		if _, err := readDiagFormat(cfg.Diagnostics.Format); err != nil {
			return fileSettings{}, meta, fmt.Errorf("%s: [diagnostics].format: %w", path, err)
		}
	}
	return cfg, meta, nil
}

// loadSettings finds and decodes the settings file, then copies its values
// into every flag of cmd that the user did not set explicitly. Only keys
// present in the file are applied.
func loadSettings(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := findSettingsFile(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}

	cfg, meta, err := loadSettingsFile(path)
	if err != nil {
		return err
	}
	apply := func(name string, defined bool, value string) error {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed || !defined {
			return nil
		}
		if err := flag.Value.Set(value); err != nil {
			return fmt.Errorf("%s: %s: %w", path, name, err)
		}
		return nil
	}
	steps := []struct {
		flag    string
		defined bool
		value   string
	}{
		{"color", meta.IsDefined("output", "color"), cfg.Output.Color},
		{"format", meta.IsDefined("output", "format") && cmd.Name() == "parse", cfg.Output.Format},
		{"lenient", meta.IsDefined("parse", "lenient"), fmt.Sprint(cfg.Parse.Lenient)},
		{"max-depth", meta.IsDefined("parse", "max_depth"), fmt.Sprint(cfg.Parse.MaxDepth)},
		{"cache", meta.IsDefined("parse", "cache"), fmt.Sprint(cfg.Parse.Cache)},
		{"max-diagnostics", meta.IsDefined("diagnostics", "max"), fmt.Sprint(cfg.Diagnostics.Max)},
		{"diagnostics-format", meta.IsDefined("diagnostics", "format"), cfg.Diagnostics.Format},
	}
	for _, s := range steps {
		if err := apply(s.flag, s.defined, s.value); err != nil {
			return err
		}
	}
	return nil
}
