package mkdbupgrade

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Reference is a git reference resolved to a commit.
type Reference struct {
	// Name is the reference as the operator gave it (branch, tag, or remote ref).
	Name string

	// Commit is the full object id the reference points at.
	Commit string
}

func (r Reference) String() string {
	if r.Commit == "" {
		return r.Name
	}
	short := r.Commit
	if len(short) > 12 {
		short = short[:12]
	}
	return fmt.Sprintf("%s (%s)", r.Name, short)
}

// TreeEntry is one regular file listed from a directory at a reference.
type TreeEntry struct {
	// Path is relative to the repository root, forward slashes.
	Path string

	// BlobID identifies the file content; equal ids mean equal content.
	BlobID string
}

// Classification tells whether a fragment joins the main transaction.
type Classification int

const (
	// Mergeable fragments are folded into the single main transaction.
	Mergeable Classification = iota
	// Standalone fragments run verbatim after the main transaction.
	Standalone
)

func (c Classification) String() string {
	switch c {
	case Mergeable:
		return "merged"
	case Standalone:
		return "moved"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Fragment is one numbered upgrade script collected from the target reference.
// Fragments are treated as immutable once collected.
type Fragment struct {
	// Path is relative to the repository root.
	Path string

	// Name is the base file name.
	Name string

	// SequenceKey is the leading integer of Name and orders application.
	SequenceKey uint64

	// Content is the raw SQL text.
	Content string

	// Checksum is the SHA-256 of Content, hex encoded.
	Checksum string

	Classification Classification
}

// SideContent is a user-supplied file included verbatim before or after the upgrade.
type SideContent struct {
	Path    string
	Content string
}

// SourceRange records that lines ScriptStart..ScriptEnd (1-based, inclusive)
// of an assembled script are lines FileLine.. of File.
type SourceRange struct {
	ScriptStart int
	ScriptEnd   int
	File        string
	FileLine    int

	// Section names the part of the script, e.g. "merged upgrades".
	Section string
}

// BuildConfig contains every input of one build. Nothing in the engine reads
// flags or environment variables; the CLI resolves them into this structure.
type BuildConfig struct {
	// RepoRoot is the top-level directory of the git checkout.
	RepoRoot string

	// UpgradeDir holds the numbered upgrade scripts, relative to RepoRoot.
	UpgradeDir string

	// FromRef is the reference being upgraded from. Required.
	FromRef string

	// FromVersion overrides the version derived from FromRef.
	FromVersion string

	// ToRef is the reference being upgraded to. Empty means the checked-out branch.
	ToRef string

	// ToVersion overrides the version derived from ToRef.
	ToVersion string

	// MovePatterns route matching fragments out of the main transaction.
	MovePatterns []string

	// PrependFiles and AppendFiles are included verbatim, in order.
	PrependFiles []string
	AppendFiles  []string

	// Prefix is concatenated directly in front of the output file name.
	Prefix string

	// OutputDir receives the script. Relative paths are taken from RepoRoot.
	OutputDir string

	// Overwrite allows replacing an existing output file.
	Overwrite bool

	// DryRun assembles the script without writing it.
	DryRun bool

	// Review opens the written script in the operator's editor.
	Review bool

	// AuditorUpdate appends the auditor table refresh after the upgrades.
	AuditorUpdate bool

	// ProductName is shown in the script header.
	ProductName string
}

// Validate checks if the BuildConfig has all required fields.
// It returns a joined error if multiple validation failures occur.
func (c *BuildConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.RepoRoot) == "" {
		errs = append(errs, fmt.Errorf("RepoRoot is required: %w", ErrInvalidConfig))
	}
	if strings.TrimSpace(c.FromRef) == "" {
		errs = append(errs, fmt.Errorf("from branch is required: %w", ErrInvalidConfig))
	}
	if strings.TrimSpace(c.UpgradeDir) == "" {
		errs = append(errs, fmt.Errorf("upgrade directory is required: %w", ErrInvalidConfig))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, fmt.Errorf("output directory is required: %w", ErrInvalidConfig))
	}
	if strings.ContainsAny(c.Prefix, `/\`) {
		errs = append(errs, fmt.Errorf("prefix %q must not contain path separators: %w", c.Prefix, ErrInvalidConfig))
	}
	if hasControl(c.Prefix) {
		errs = append(errs, fmt.Errorf("prefix %q must not contain control characters: %w", c.Prefix, ErrInvalidConfig))
	}
	if hasControl(c.ProductName) {
		errs = append(errs, fmt.Errorf("product name %q must not contain control characters: %w", c.ProductName, ErrInvalidConfig))
	}
	for _, v := range []struct{ name, label string }{
		{"from version", c.FromVersion},
		{"to version", c.ToVersion},
	} {
		if err := ValidateVersionLabel(v.label); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.name, err))
		}
	}

	return errors.Join(errs...)
}

// ValidateVersionLabel checks a version label that will become part of the
// output file name and the script header. Labels are otherwise opaque; an
// empty label is accepted and means "derive it from the reference".
func ValidateVersionLabel(label string) error {
	switch {
	case strings.ContainsAny(label, `/\`):
		return fmt.Errorf("version %q must not contain path separators: %w", label, ErrInvalidConfig)
	case strings.Contains(label, ".."):
		return fmt.Errorf("version %q must not contain \"..\": %w", label, ErrInvalidConfig)
	case hasControl(label):
		return fmt.Errorf("version %q must not contain control characters: %w", label, ErrInvalidConfig)
	}
	return nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// BuildResult describes a completed build.
type BuildResult struct {
	// OutputPath is where the script was (or, for a dry run, would be) written.
	OutputPath string

	FromVersion string
	ToVersion   string
	From        Reference
	To          Reference

	// Merged and Standalone are in sequence-key order.
	Merged     []Fragment
	Standalone []Fragment

	// Script is the assembled text.
	Script string

	// Sources maps line ranges of Script back to the files they were copied from.
	Sources []SourceRange

	// Written is false for dry runs.
	Written bool
}
