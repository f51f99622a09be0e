package fragment

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// fakeVCS serves trees from memory: ref name -> path -> content.
type fakeVCS struct {
	trees   map[string]map[string]string
	listErr error
	readErr error
	reads   []string
}

func (f *fakeVCS) CurrentBranch(_ context.Context) (string, error) {
	return "HEAD", nil
}

func (f *fakeVCS) ResolveReference(_ context.Context, name string) (mkdbupgrade.Reference, error) {
	if _, ok := f.trees[name]; !ok {
		return mkdbupgrade.Reference{}, fmt.Errorf("%w: %s", mkdbupgrade.ErrReferenceUnreachable, name)
	}
	return mkdbupgrade.Reference{Name: name, Commit: "c0ffee-" + name}, nil
}

func (f *fakeVCS) ListFiles(_ context.Context, ref mkdbupgrade.Reference, dir string) ([]mkdbupgrade.TreeEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
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
	if f.readErr != nil {
		return nil, f.readErr
	}
	f.reads = append(f.reads, p)
	content, ok := f.trees[ref.Name][p]
	if !ok {
		return nil, fmt.Errorf("%s not in %s", p, ref.Name)
	}
	return []byte(content), nil
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
