// Package script turns classified upgrade fragments into the text of a
// version upgrade script.
package script

import (
	"regexp"
	"strings"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// boundaryLine matches a line that does nothing but open or close a
// transaction. plpgsql block BEGIN (no semicolon) and END; are not matched.
var boundaryLine = regexp.MustCompile(`^\s*(?i:(?:BEGIN|COMMIT)(?:\s+(?:TRANSACTION|WORK))?|START\s+TRANSACTION)\s*;\s*(?:--.*)?$`)

const (
	beginLine  = "BEGIN;"
	commitLine = "COMMIT;"
)

// IsTransactionBoundary reports whether line, read on its own, solely opens
// or closes a transaction. It has no lexical context; callers stripping
// fragments go through scanFragment.
func IsTransactionBoundary(line string) bool {
	return boundaryLine.MatchString(line)
}

// StripTransactionBoundaries removes the fragment's own transaction boundary
// lines from content. Lines inside strings, dollar-quoted bodies, and block
// comments are kept even when they read like a boundary. Every remaining line
// is terminated with a newline.
func StripTransactionBoundaries(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, line := range scanFragment(content) {
		if line.boundary {
			continue
		}
		b.WriteString(line.text)
		b.WriteByte('\n')
	}
	return b.String()
}

// fragmentLine is one line of a fragment and whether it is a statement-level
// transaction boundary.
type fragmentLine struct {
	text     string
	boundary bool
}

func scanFragment(content string) []fragmentLine {
	lines := splitLines(content)
	out := make([]fragmentLine, len(lines))
	var sc sqlScanner
	for i, line := range lines {
		out[i] = fragmentLine{
			text:     line,
			boundary: sc.topLevel() && IsTransactionBoundary(line),
		}
		sc.scanLine(line)
	}
	return out
}

// Merge folds the fragments into one transaction, in the order given.
// Callers pass fragments sorted by sequence key. An empty slice yields an
// empty transaction.
func Merge(fragments []mkdbupgrade.Fragment) string {
	var w lineWriter
	mergeInto(&w, fragments)
	return w.String()
}

// mergeInto writes the merged transaction. Each run of kept lines is
// recorded against the fragment it came from.
func mergeInto(w *lineWriter, fragments []mkdbupgrade.Fragment) {
	w.WriteString(beginLine)
	w.WriteByte('\n')
	for _, f := range fragments {
		runStart, runFileLine := 0, 0
		for i, line := range scanFragment(f.Content) {
			if line.boundary {
				if runStart > 0 {
					w.record(runStart, w.lines, f.Path, runFileLine, SectionMerged)
					runStart = 0
				}
				continue
			}
			if runStart == 0 {
				runStart, runFileLine = w.nextLine(), i+1
			}
			w.WriteString(line.text)
			w.WriteByte('\n')
		}
		if runStart > 0 {
			w.record(runStart, w.lines, f.Path, runFileLine, SectionMerged)
		}
	}
	w.WriteString(commitLine)
	w.WriteByte('\n')
}

// splitLines splits on '\n' without producing a trailing empty element for a
// final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
