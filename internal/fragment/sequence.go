package fragment

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// SequenceKey parses the leading integer of a fragment file name.
func SequenceKey(name string) (uint64, error) {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: %s does not start with an upgrade number", mkdbupgrade.ErrMalformedFragmentName, name)
	}
	key, err := strconv.ParseUint(name[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", mkdbupgrade.ErrMalformedFragmentName, name, err)
	}
	return key, nil
}

// SortBySequence orders fragments ascending by sequence key, in place.
func SortBySequence(fragments []mkdbupgrade.Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].SequenceKey < fragments[j].SequenceKey
	})
}
