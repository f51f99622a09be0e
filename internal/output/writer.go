package output

import (
	"fmt"
	"path/filepath"

	"github.com/cwmars/mkdbupgrade/internal/files/filesystem"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// FileMode is the permission of written scripts.
const FileMode = 0o644

// Writer enforces the overwrite policy and writes scripts atomically.
type Writer struct {
	fs filesystem.FileSystemProvider
}

// NewWriter creates a Writer. Panics if fsProvider is nil.
func NewWriter(fsProvider filesystem.FileSystemProvider) *Writer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Writer{fs: fsProvider}
}

// Check fails with ErrDestinationExists when path exists and overwrite is false.
func (w *Writer) Check(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	exists, err := filesystem.Exists(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check output file %s: %w", path, err)
	}
	if exists {
		return fmt.Errorf("%w: %s\nYou can overwrite it with the --clobber (-C) option", mkdbupgrade.ErrDestinationExists, path)
	}
	return nil
}

// Write stores content at path, creating the directory if needed.
// The overwrite policy is checked again right before writing.
func (w *Writer) Write(path, content string, overwrite bool) error {
	if err := w.Check(path, overwrite); err != nil {
		return err
	}
	if err := w.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.fs.WriteFileAtomic(path, []byte(content), FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
