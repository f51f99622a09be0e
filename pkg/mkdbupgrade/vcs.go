package mkdbupgrade

import "context"

// VersionControl is the read-only view of the git repository the build needs.
// Implementations must return an error wrapping ErrReferenceUnreachable when a
// reference cannot be resolved locally, so it can be told apart from other
// failures.
type VersionControl interface {
	// CurrentBranch returns the short name of the checked-out branch,
	// or "HEAD" when the checkout is detached.
	CurrentBranch(ctx context.Context) (string, error)

	// ResolveReference resolves a branch, tag, or remote ref name to a commit.
	ResolveReference(ctx context.Context, name string) (Reference, error)

	// ListFiles lists the regular files directly inside dir at ref.
	// A directory missing at ref yields an empty list.
	ListFiles(ctx context.Context, ref Reference, dir string) ([]TreeEntry, error)

	// ReadFile returns the content of the file at path in ref.
	ReadFile(ctx context.Context, ref Reference, path string) ([]byte, error)
}
