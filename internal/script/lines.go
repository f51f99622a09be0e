package script

import (
	"strings"

	"github.com/cwmars/mkdbupgrade/internal/sourcemap"
)

// Section names recorded in the source map.
const (
	SectionPrepend  = "prepended code"
	SectionMerged   = "merged upgrades"
	SectionMoved    = "moved upgrades"
	SectionAppended = "appended code"
)

// lineWriter is a strings.Builder that counts completed lines and, when a
// map is attached, records where copied text came from.
type lineWriter struct {
	b     strings.Builder
	lines int
	sm    *sourcemap.SourceMap
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.lines += strings.Count(string(p), "\n")
	return w.b.Write(p)
}

func (w *lineWriter) WriteString(s string) (int, error) {
	w.lines += strings.Count(s, "\n")
	return w.b.WriteString(s)
}

func (w *lineWriter) WriteByte(c byte) error {
	if c == '\n' {
		w.lines++
	}
	return w.b.WriteByte(c)
}

func (w *lineWriter) String() string {
	return w.b.String()
}

// nextLine is the 1-based number of the line the next write starts on.
func (w *lineWriter) nextLine() int {
	return w.lines + 1
}

// record maps script lines start..end to file lines fileLine.. when mapping is on.
func (w *lineWriter) record(start, end int, file string, fileLine int, section string) {
	if w.sm == nil {
		return
	}
	w.sm.Add(start, end, file, fileLine, section)
}
