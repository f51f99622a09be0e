// Package output names version upgrade scripts and writes them to disk.
package output

import "github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"

// FileName returns <prefix><from>-<to>-upgrade-db.sql. The prefix is
// concatenated as given; include any separator in it.
func FileName(prefix, from, to string) string {
	return prefix + from + "-" + to + mkdbupgrade.OutputFileSuffix
}
