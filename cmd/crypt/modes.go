package main

import (
	"fmt"
	"os"
	"strings"
)

// autoMode is the auto|on|off switch behind --color and --ui.
type autoMode string

const (
	modeAuto autoMode = "auto"
	modeOn   autoMode = "on"
	modeOff  autoMode = "off"
)

func readAutoMode(flag, value string) (autoMode, error) {
	switch m := autoMode(strings.TrimSpace(strings.ToLower(value))); m {
	case "":
		return modeAuto, nil
	case modeAuto, modeOn, modeOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// resolve answers auto with whether f is a terminal.
func (m autoMode) resolve(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return isTerminal(f)
	}
}

// useProgressView decides whether check draws the progress view. Quiet runs
// never do; in auto mode a single file is not worth a view.
func useProgressView(mode autoMode, g globalFlags, files int) bool {
	if g.quiet {
		return false
	}
	if mode == modeAuto && files < 2 {
		return false
	}
	return mode.resolve(os.Stdout)
}
