// Package sourcemap maps lines of an assembled upgrade script back to the
// upgrade or side content file they came from, so a psql error line can be
// traced to its source.
package sourcemap

import "github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"

// Entry maps a range of script lines to consecutive lines of one file.
type Entry = mkdbupgrade.SourceRange

// SourceMap tracks how lines of a script map back to original sources.
type SourceMap struct {
	entries []Entry
}

// New creates a new empty SourceMap.
func New() *SourceMap {
	return &SourceMap{
		entries: make([]Entry, 0),
	}
}

// FromEntries rebuilds a SourceMap from previously recorded entries.
func FromEntries(entries []Entry) *SourceMap {
	sm := New()
	sm.entries = append(sm.entries, entries...)
	return sm
}

// Add records that script lines start..end (1-based, inclusive) are lines
// fileLine.. of file. Empty ranges are ignored.
func (sm *SourceMap) Add(start, end int, file string, fileLine int, section string) {
	if end < start {
		return
	}
	sm.entries = append(sm.entries, Entry{
		ScriptStart: start,
		ScriptEnd:   end,
		File:        file,
		FileLine:    fileLine,
		Section:     section,
	})
}

// Resolve finds the file and line a script line was copied from.
func (sm *SourceMap) Resolve(scriptLine int) (file string, line int, section string, found bool) {
	// Linear search - could be optimized with binary search if needed
	for _, e := range sm.entries {
		if scriptLine >= e.ScriptStart && scriptLine <= e.ScriptEnd {
			return e.File, e.FileLine + scriptLine - e.ScriptStart, e.Section, true
		}
	}
	return "", 0, "", false
}

// Span returns the first and last script line copied from file.
func (sm *SourceMap) Span(file string) (start, end int, found bool) {
	for _, e := range sm.entries {
		if e.File != file {
			continue
		}
		if !found || e.ScriptStart < start {
			start = e.ScriptStart
		}
		if !found || e.ScriptEnd > end {
			end = e.ScriptEnd
		}
		found = true
	}
	return start, end, found
}

// Entries returns a copy of all source entries.
func (sm *SourceMap) Entries() []Entry {
	result := make([]Entry, len(sm.entries))
	copy(result, sm.entries)
	return result
}

// Len returns the number of entries in the source map.
func (sm *SourceMap) Len() int {
	return len(sm.entries)
}
