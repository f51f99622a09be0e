// Package sidecontent reads the operator's prepend and append files.
package sidecontent

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/cwmars/mkdbupgrade/internal/files/filesystem"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// Loader reads side content files verbatim.
type Loader struct {
	fs     filesystem.FileSystemProvider
	logger mkdbupgrade.Logger
}

// NewLoader creates a Loader. Panics if any dependency is nil.
func NewLoader(fsProvider filesystem.FileSystemProvider, logger mkdbupgrade.Logger) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{fs: fsProvider, logger: logger}
}

// Load reads prepend and append files, keeping the order they were given in.
// Every unreadable file is reported, not just the first one; the returned
// error wraps ErrSideContentUnreadable.
func (l *Loader) Load(prependFiles, appendFiles []string) (prepend, appendix []mkdbupgrade.SideContent, err error) {
	var result *multierror.Error

	read := func(kind string, paths []string) []mkdbupgrade.SideContent {
		out := make([]mkdbupgrade.SideContent, 0, len(paths))
		for _, p := range paths {
			data, rerr := l.fs.ReadFile(p)
			if rerr != nil {
				result = multierror.Append(result, fmt.Errorf("%s file %s: %w", kind, p, rerr))
				continue
			}
			l.logger.Verbose("Loaded %s file %s (%d bytes)", kind, p, len(data))
			out = append(out, mkdbupgrade.SideContent{Path: p, Content: string(data)})
		}
		return out
	}

	prepend = read("prepend", prependFiles)
	appendix = read("append", appendFiles)

	if result.ErrorOrNil() != nil {
		return nil, nil, fmt.Errorf("%w: %v", mkdbupgrade.ErrSideContentUnreadable, result)
	}
	return prepend, appendix, nil
}
