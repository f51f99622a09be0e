// Package review opens a generated upgrade script in the operator's editor.
package review

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// EditorEnvVars lists the variables consulted for the editor command, in order.
var EditorEnvVars = []string{"MKDBUPGRADE_EDITOR", "VISUAL", "EDITOR"}

// EditorFromEnv returns the first non-blank editor command found through lookup.
func EditorFromEnv(lookup func(string) string) string {
	for _, name := range EditorEnvVars {
		if v := strings.TrimSpace(lookup(name)); v != "" {
			return v
		}
	}
	return ""
}

// EditorReviewer implements the Reviewer interface by running an editor
// attached to the terminal and waiting for it to exit.
type EditorReviewer struct {
	command string
	logger  mkdbupgrade.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewEditorReviewer creates a reviewer for the given editor command line.
// The command is split on whitespace and the script path is appended.
func NewEditorReviewer(command string, logger mkdbupgrade.Logger) *EditorReviewer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &EditorReviewer{
		command: command,
		logger:  logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// Review opens path in the editor and blocks until the editor exits.
func (r *EditorReviewer) Review(ctx context.Context, path string) error {
	fields := strings.Fields(r.command)
	if len(fields) == 0 {
		return fmt.Errorf("%w: set MKDBUPGRADE_EDITOR, VISUAL or EDITOR", mkdbupgrade.ErrEditorNotConfigured)
	}

	args := append(fields[1:len(fields):len(fields)], path)
	r.logger.Verbose("Opening %s with %s", path, fields[0])

	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed on %s: %w", fields[0], path, err)
	}
	return nil
}

var _ mkdbupgrade.Reviewer = (*EditorReviewer)(nil)
