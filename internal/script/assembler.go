package script

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/cwmars/mkdbupgrade/internal/checksum"
	"github.com/cwmars/mkdbupgrade/internal/sourcemap"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// Header is the informational comment block opening a script.
// Nothing parses it back.
type Header struct {
	ProductName string
	FromVersion string
	ToVersion   string
	FromRef     string
	ToRef       string
	ToolVersion string
	RunID       string
	GeneratedAt time.Time
}

// Script is everything that goes into one upgrade script.
type Script struct {
	Header     Header
	Prepend    []mkdbupgrade.SideContent
	Mergeable  []mkdbupgrade.Fragment
	Standalone []mkdbupgrade.Fragment
	Append     []mkdbupgrade.SideContent

	// AuditorUpdate adds the auditor table refresh after the upgrades.
	AuditorUpdate bool
}

const auditorUpdate = `-- Update auditor tables to catch changes in source tables.
-- Can be removed/skipped if there were no schema changes.
SELECT auditor.update_auditors();
`

// Assemble renders s in fixed order: header, prepended code, the merged
// transaction, moved upgrades, the auditor refresh, appended code.
// Moved upgrades and side content are copied byte for byte.
func Assemble(s Script) string {
	out, _ := AssembleWithMap(s)
	return out
}

// AssembleWithMap is Assemble that also reports which script lines were
// copied from which fragment or side content file.
func AssembleWithMap(s Script) (string, *sourcemap.SourceMap) {
	mergeable := sortedCopy(s.Mergeable)
	for i := range mergeable {
		mergeable[i].Classification = mkdbupgrade.Mergeable
	}
	standalone := sortedCopy(s.Standalone)
	for i := range standalone {
		standalone[i].Classification = mkdbupgrade.Standalone
	}

	w := &lineWriter{sm: sourcemap.New()}
	writeHeader(w, s.Header, mergeable, standalone)
	w.WriteByte('\n')

	if len(s.Prepend) > 0 {
		w.WriteString("-- Start of prepended code\n")
		for _, sc := range s.Prepend {
			writeVerbatim(w, sc.Content, sc.Path, SectionPrepend)
		}
		w.WriteString("-- End of prepended code\n\n")
	}

	mergeInto(w, mergeable)
	w.WriteByte('\n')

	if len(standalone) > 0 {
		w.WriteString("-- Start of moved upgrades\n")
		for _, f := range standalone {
			writeVerbatim(w, f.Content, f.Path, SectionMoved)
		}
		w.WriteString("-- End of moved upgrades\n\n")
	}

	if s.AuditorUpdate {
		w.WriteString(auditorUpdate)
		w.WriteByte('\n')
	}

	if len(s.Append) > 0 {
		w.WriteString("-- Start of appended code\n")
		for _, sc := range s.Append {
			writeVerbatim(w, sc.Content, sc.Path, SectionAppended)
		}
		w.WriteString("-- End of appended code\n")
	}

	return w.String(), w.sm
}

func writeHeader(b *lineWriter, h Header, mergeable, standalone []mkdbupgrade.Fragment) {
	product := h.ProductName
	if product == "" {
		product = mkdbupgrade.DefaultProductName
	}
	fmt.Fprintf(b, "-- Upgrade script for %s %s to %s\n", oneLine(product), oneLine(h.FromVersion), oneLine(h.ToVersion))

	generated := "-- Generated by mkdbupgrade"
	if h.ToolVersion != "" {
		generated += " " + oneLine(h.ToolVersion)
	}
	if !h.GeneratedAt.IsZero() {
		generated += " on " + h.GeneratedAt.UTC().Format(time.RFC3339)
	}
	b.WriteString(generated + "\n")
	if h.RunID != "" {
		fmt.Fprintf(b, "-- Run: %s\n", oneLine(h.RunID))
	}
	if h.FromRef != "" {
		fmt.Fprintf(b, "-- From: %s\n", oneLine(h.FromRef))
	}
	if h.ToRef != "" {
		fmt.Fprintf(b, "-- To:   %s\n", oneLine(h.ToRef))
	}

	all := sortedCopy(append(append([]mkdbupgrade.Fragment{}, mergeable...), standalone...))
	fmt.Fprintf(b, "--\n-- Upgrades (%d merged, %d moved):\n", len(mergeable), len(standalone))
	for _, f := range all {
		fmt.Fprintf(b, "--   %-6d %-6s %s", f.SequenceKey, f.Classification, oneLine(f.Name))
		if f.Checksum != "" {
			fmt.Fprintf(b, "  sha256:%s", checksum.Short(f.Checksum, mkdbupgrade.ManifestChecksumLength))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(b, "\\set eg_version %s\n", psqlQuote(sqlLiteral(h.ToVersion)))
}

// oneLine replaces control characters so s cannot end a "--" comment line.
func oneLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// sqlLiteral quotes s as a SQL string literal.
func sqlLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// psqlQuote quotes s as one psql meta-command argument so the variable holds
// s exactly. Control characters are flattened first.
func psqlQuote(s string) string {
	s = strings.ReplaceAll(oneLine(s), `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// writeVerbatim copies content unchanged, then a newline if content did not
// end with one so the next block starts on its own line.
func writeVerbatim(w *lineWriter, content, file, section string) {
	if content == "" {
		return
	}
	start := w.nextLine()
	w.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		w.WriteByte('\n')
	}
	w.record(start, w.lines, file, 1, section)
}

func sortedCopy(fragments []mkdbupgrade.Fragment) []mkdbupgrade.Fragment {
	out := append([]mkdbupgrade.Fragment(nil), fragments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SequenceKey < out[j].SequenceKey
	})
	return out
}
