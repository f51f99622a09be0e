package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// CommandError describes a failed git invocation.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Repository is a git checkout driven through the git binary.
type Repository struct {
	gitPath string
	root    string
}

// Open locates the repository containing dir.
// Fails with ErrNotRepository when dir is not inside a work tree.
func Open(ctx context.Context, dir string) (*Repository, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}

	r := &Repository{gitPath: gitPath, root: dir}
	out, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mkdbupgrade.ErrNotRepository, dir, err)
	}
	r.root = strings.TrimSpace(string(out))
	return r, nil
}

// Root returns the top-level directory of the work tree.
func (r *Repository) Root() string {
	return r.root
}

// CurrentBranch returns the checked-out branch, or "HEAD" when detached.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return "HEAD", nil
		}
		return "", fmt.Errorf("failed to read current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ResolveReference resolves name to a commit. Unknown names fail with
// ErrReferenceUnreachable; remote branches are given as "origin/<branch>".
func (r *Repository) ResolveReference(ctx context.Context, name string) (mkdbupgrade.Reference, error) {
	if name == "" || strings.HasPrefix(name, "-") {
		return mkdbupgrade.Reference{}, fmt.Errorf("%w: invalid reference name %q", mkdbupgrade.ErrReferenceUnreachable, name)
	}

	out, err := r.run(ctx, "rev-parse", "--verify", "--quiet", name+"^{commit}")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return mkdbupgrade.Reference{}, fmt.Errorf("%w: %s (has it been fetched?)", mkdbupgrade.ErrReferenceUnreachable, name)
		}
		return mkdbupgrade.Reference{}, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	return mkdbupgrade.Reference{Name: name, Commit: strings.TrimSpace(string(out))}, nil
}

// ListFiles lists the blobs directly inside dir at ref.
func (r *Repository) ListFiles(ctx context.Context, ref mkdbupgrade.Reference, dir string) ([]mkdbupgrade.TreeEntry, error) {
	out, err := r.run(ctx, "ls-tree", "-z", "--full-tree", r.revision(ref), "--", strings.TrimSuffix(dir, "/")+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s at %s: %w", dir, ref.Name, err)
	}
	return parseLsTree(out)
}

// ReadFile returns the content of path at ref.
func (r *Repository) ReadFile(ctx context.Context, ref mkdbupgrade.Reference, path string) ([]byte, error) {
	out, err := r.run(ctx, "cat-file", "blob", r.revision(ref)+":"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", path, ref.Name, err)
	}
	return out, nil
}

func (r *Repository) revision(ref mkdbupgrade.Reference) string {
	if ref.Commit != "" {
		return ref.Commit
	}
	return ref.Name
}

func (r *Repository) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, append([]string{"-C", r.root}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		cmdErr := &CommandError{Args: args, ExitCode: -1, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return nil, cmdErr
	}
	return out, nil
}

// parseLsTree parses NUL-terminated "<mode> SP <type> SP <object> TAB <path>"
// records, keeping regular files only. Symlinks (120000) are blobs too but
// hold a link target, and gitlinks (160000) are commits.
func parseLsTree(out []byte) ([]mkdbupgrade.TreeEntry, error) {
	var entries []mkdbupgrade.TreeEntry
	for _, rec := range bytes.Split(out, []byte{0}) {
		if len(rec) == 0 {
			continue
		}
		meta, path, ok := bytes.Cut(rec, []byte{'\t'})
		if !ok {
			return nil, fmt.Errorf("unexpected ls-tree output: %q", rec)
		}
		fields := strings.Fields(string(meta))
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected ls-tree output: %q", rec)
		}
		if fields[1] != "blob" || !isRegularFileMode(fields[0]) {
			continue
		}
		entries = append(entries, mkdbupgrade.TreeEntry{Path: string(path), BlobID: fields[2]})
	}
	return entries, nil
}

// isRegularFileMode accepts 100644, 100755, and the legacy 100664.
func isRegularFileMode(mode string) bool {
	return strings.HasPrefix(mode, "100")
}

var _ mkdbupgrade.VersionControl = (*Repository)(nil)
