// Package git implements mkdbupgrade.VersionControl on top of the git
// command-line client.
//
// Only plumbing commands are used (rev-parse, symbolic-ref, ls-tree,
// cat-file) so output is stable across git versions and user configuration.
// Every command runs with -C set to the repository root and honors context
// cancellation.
package git
