package fragment

import (
	"strings"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// Matches reports whether path contains any of the patterns.
// Empty patterns never match.
func Matches(path string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Classify partitions fragments into mergeable and standalone sets.
// A fragment is standalone iff its path contains one of patterns.
// Relative order is preserved within each set and the inputs are not modified.
func Classify(fragments []mkdbupgrade.Fragment, patterns []string) (mergeable, standalone []mkdbupgrade.Fragment) {
	mergeable = make([]mkdbupgrade.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if Matches(f.Path, patterns) {
			f.Classification = mkdbupgrade.Standalone
			standalone = append(standalone, f)
			continue
		}
		f.Classification = mkdbupgrade.Mergeable
		mergeable = append(mergeable, f)
	}
	return mergeable, standalone
}
