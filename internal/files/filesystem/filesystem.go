package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the set of filesystem operations a build performs.
// Missing paths are reported with errors satisfying errors.Is(err, fs.ErrNotExist).
type FileSystemProvider interface {
	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error

	// WriteFileAtomic replaces path with data. Readers see either the old
	// content or the complete new content, never a partial write.
	WriteFileAtomic(path string, data []byte, perm fs.FileMode) error
}

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(p FileSystemProvider, path string) (bool, error) {
	_, err := p.Stat(path)
	if err == nil {
		return true, nil
	}
	if isNotExist(err) {
		return false, nil
	}
	return false, err
}
