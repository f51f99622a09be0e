package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// fakeVCS serves trees from memory: ref name -> path -> content.
type fakeVCS struct {
	trees     map[string]map[string]string
	branch    string
	branchErr error
	resolved  []string
}

func (f *fakeVCS) CurrentBranch(_ context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeVCS) ResolveReference(_ context.Context, name string) (mkdbupgrade.Reference, error) {
	f.resolved = append(f.resolved, name)
	if _, ok := f.trees[name]; !ok {
		return mkdbupgrade.Reference{}, fmt.Errorf("%w: %s (has it been fetched?)", mkdbupgrade.ErrReferenceUnreachable, name)
	}
	return mkdbupgrade.Reference{Name: name, Commit: "0123456789abcdef-" + name}, nil
}

func (f *fakeVCS) ListFiles(_ context.Context, ref mkdbupgrade.Reference, dir string) ([]mkdbupgrade.TreeEntry, error) {
	var entries []mkdbupgrade.TreeEntry
	for p, content := range f.trees[ref.Name] {
		if path.Dir(p) != dir {
			continue
		}
		entries = append(entries, mkdbupgrade.TreeEntry{Path: p, BlobID: "blob:" + content})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (f *fakeVCS) ReadFile(_ context.Context, ref mkdbupgrade.Reference, p string) ([]byte, error) {
	content, ok := f.trees[ref.Name][p]
	if !ok {
		return nil, fmt.Errorf("%s not in %s", p, ref.Name)
	}
	return []byte(content), nil
}

type mockReviewer struct {
	paths []string
	err   error
}

func (m *mockReviewer) Review(_ context.Context, path string) error {
	m.paths = append(m.paths, path)
	return m.err
}

// recordingLogger keeps Info and Error lines for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Verbose(_ string, _ ...interface{}) {}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.Info(format, args...)
}
