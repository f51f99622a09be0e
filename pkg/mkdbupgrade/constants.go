package mkdbupgrade

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess               = 0  // Script written (or planned) successfully
	ExitGeneralError          = 1  // Unknown or unclassified error
	ExitUsageError            = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic                 = 3  // Internal panic (unexpected crash)
	ExitConfigError           = 10 // Invalid configuration or undetectable version
	ExitReferenceUnreachable  = 11 // Source or target reference not found
	ExitDestinationExists     = 12 // Output file exists and --clobber not given
	ExitMalformedFragment     = 13 // Upgrade file name lacks a usable sequence number
	ExitSideContentUnreadable = 14 // Prepend/append file missing or unreadable
	ExitNoFragments           = 15 // Nothing to upgrade between the two references
)

const (
	// DefaultUpgradeDir is the directory, relative to the repository root,
	// holding the numbered upgrade scripts.
	DefaultUpgradeDir = "Open-ILS/src/sql/Pg/upgrade"

	// DefaultOutputDir is where version upgrade scripts are written,
	// relative to the repository root.
	DefaultOutputDir = "Open-ILS/src/sql/Pg/version-upgrade"

	// DefaultProductName appears in the script header.
	DefaultProductName = "Evergreen"

	// OutputFileSuffix ends every generated file name.
	OutputFileSuffix = "-upgrade-db.sql"

	// FragmentExtension is the extension an upgrade file must carry to be collected.
	FragmentExtension = ".sql"

	// ManifestChecksumLength is the number of hex digits of each fragment's
	// SHA-256 shown in the header manifest.
	ManifestChecksumLength = 12
)
