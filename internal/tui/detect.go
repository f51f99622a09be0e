package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how output to a stream should be rendered.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode decides whether f is being read by a human.
//
// Returns ModeNonInteractive if:
//   - MKDBUPGRADE_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - f is not a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode(f *os.File) Mode {
	if os.Getenv("MKDBUPGRADE_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if f is an interactive terminal.
func IsInteractive(f *os.File) bool {
	return DetectMode(f) == ModeInteractive
}
