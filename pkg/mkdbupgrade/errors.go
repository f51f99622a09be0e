package mkdbupgrade

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure scenarios of a build.
// Callers distinguish them with errors.Is(); the wrapped message names the
// failing input (reference, file path, or missing option).
//
// Example usage:
//
//	_, err := builder.Build(ctx, cfg)
//	if errors.Is(err, mkdbupgrade.ErrDestinationExists) {
//	    // re-run with --clobber
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrVersionUndetected indicates no version label could be derived from a
	// reference name and no explicit version was given.
	ErrVersionUndetected = errors.New("unable to determine version")

	// ErrReferenceUnreachable indicates git could not resolve a reference in
	// the local repository (typically a branch that was never fetched).
	ErrReferenceUnreachable = errors.New("reference not found")

	// ErrMalformedFragmentName indicates an upgrade file without a leading
	// numeric sequence key.
	ErrMalformedFragmentName = errors.New("malformed upgrade file name")

	// ErrDuplicateSequenceKey indicates two upgrade files share a sequence key.
	ErrDuplicateSequenceKey = errors.New("duplicate upgrade sequence number")

	// ErrDestinationExists indicates the output file exists and overwriting
	// was not requested.
	ErrDestinationExists = errors.New("output file exists")

	// ErrSideContentUnreadable indicates a prepend or append file could not be read.
	ErrSideContentUnreadable = errors.New("unreadable prepend/append file")

	// ErrNoFragments indicates the target reference adds no upgrade files.
	ErrNoFragments = errors.New("no upgrades were found")

	// ErrNotRepository indicates the working directory is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrEditorNotConfigured indicates review was requested without an editor command.
	ErrEditorNotConfigured = errors.New("no editor configured")
)

// usageErrorPatterns are the message prefixes cobra and pflag use for
// command-line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrVersionUndetected):
		return ExitConfigError
	case errors.Is(err, ErrReferenceUnreachable):
		return ExitReferenceUnreachable
	case errors.Is(err, ErrDestinationExists):
		return ExitDestinationExists
	case errors.Is(err, ErrMalformedFragmentName), errors.Is(err, ErrDuplicateSequenceKey):
		return ExitMalformedFragment
	case errors.Is(err, ErrSideContentUnreadable):
		return ExitSideContentUnreadable
	case errors.Is(err, ErrNoFragments):
		return ExitNoFragments
	}

	errStr := err.Error()
	for _, p := range usageErrorPatterns {
		if strings.HasPrefix(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
