package cli

import (
	"fmt"
	"strings"

	"github.com/cwmars/mkdbupgrade/internal/sourcemap"
	"github.com/cwmars/mkdbupgrade/internal/tui"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// renderSummary is the one-line report after a script was written.
func renderSummary(result *mkdbupgrade.BuildResult, s tui.Styler) string {
	return fmt.Sprintf("%s Wrote %s (%d merged, %d moved)",
		s.Success(tui.SymbolCheck), result.OutputPath, len(result.Merged), len(result.Standalone))
}

// renderPlan describes what a dry run would have written.
func renderPlan(result *mkdbupgrade.BuildResult, s tui.Styler) string {
	var b strings.Builder
	b.WriteString(s.Title("Upgrade plan (dry run, nothing written)"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s%s %s %s\n", s.Label("From"), result.FromVersion, tui.SymbolArrowRight, result.From)
	fmt.Fprintf(&b, "%s%s %s %s\n", s.Label("To"), result.ToVersion, tui.SymbolArrowRight, result.To)
	fmt.Fprintf(&b, "%s%s\n", s.Label("Output"), result.OutputPath)
	sm := sourcemap.FromEntries(result.Sources)
	writeFragmentList(&b, s, sm, "Merged", result.Merged)
	writeFragmentList(&b, s, sm, "Moved", result.Standalone)
	return s.Box(strings.TrimSuffix(b.String(), "\n"))
}

func writeFragmentList(b *strings.Builder, s tui.Styler, sm *sourcemap.SourceMap, label string, fragments []mkdbupgrade.Fragment) {
	fmt.Fprintf(b, "%s%d\n", s.Label(label), len(fragments))
	for _, f := range fragments {
		fmt.Fprintf(b, "  %s %s", s.Muted(tui.SymbolBullet), f.Name)
		if start, end, ok := sm.Span(f.Path); ok {
			b.WriteString(s.Muted(fmt.Sprintf("  lines %d-%d", start, end)))
		}
		b.WriteByte('\n')
	}
}

// renderLocations traces script lines back to the files they were copied from.
func renderLocations(result *mkdbupgrade.BuildResult, lines []int) string {
	sm := sourcemap.FromEntries(result.Sources)
	var b strings.Builder
	for _, n := range lines {
		file, line, section, ok := sm.Resolve(n)
		if !ok {
			fmt.Fprintf(&b, "Line %d: generated by mkdbupgrade\n", n)
			continue
		}
		fmt.Fprintf(&b, "Line %d: %s line %d (%s)\n", n, file, line, section)
	}
	return b.String()
}
