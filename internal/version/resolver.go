// Package version derives release labels from git reference names.
package version

import (
	"fmt"
	"regexp"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// branchVersion matches the _X_Y_Z suffix of release branches such as
// rel_3_15_4. Each group is one or two digits.
var branchVersion = regexp.MustCompile(`_(\d{1,2})_(\d{1,2})_(\d{1,2})`)

// FromReference extracts X.Y.Z from the first _X_Y_Z run in name.
// The boolean is false when name carries no such run.
func FromReference(name string) (string, bool) {
	m := branchVersion.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1] + "." + m[2] + "." + m[3], true
}

// Resolve returns override verbatim when it is non-empty, otherwise the
// label derived from refName. It fails with ErrVersionUndetected when
// neither yields a label.
func Resolve(refName, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if v, ok := FromReference(refName); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w from branch: %s", mkdbupgrade.ErrVersionUndetected, refName)
}
