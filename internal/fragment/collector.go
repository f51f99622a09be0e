package fragment

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cwmars/mkdbupgrade/internal/checksum"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// Collector lists the upgrade fragments a target reference adds over a source reference.
// Collector is safe for concurrent use as long as its VersionControl is.
type Collector struct {
	vcs        mkdbupgrade.VersionControl
	calculator checksum.Calculator
	logger     mkdbupgrade.Logger
	upgradeDir string
}

// NewCollector creates a Collector reading upgradeDir.
// Panics if any dependency is nil.
func NewCollector(vcs mkdbupgrade.VersionControl, calculator checksum.Calculator, logger mkdbupgrade.Logger, upgradeDir string) *Collector {
	if vcs == nil {
		panic("vcs cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Collector{
		vcs:        vcs,
		calculator: calculator,
		logger:     logger,
		upgradeDir: strings.TrimSuffix(path.Clean(upgradeDir), "/"),
	}
}

type candidate struct {
	entry mkdbupgrade.TreeEntry
	name  string
	key   uint64
}

// Collect returns the fragments present in target but absent from, or
// different in, source. The result is sorted by sequence key.
//
// Every candidate name is validated before any content is read, so a
// malformed or duplicate upgrade number fails the run without further git
// traffic.
func (c *Collector) Collect(ctx context.Context, source, target mkdbupgrade.Reference) ([]mkdbupgrade.Fragment, error) {
	sourceEntries, err := c.vcs.ListFiles(ctx, source, c.upgradeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list upgrades in %s: %w", source.Name, err)
	}
	targetEntries, err := c.vcs.ListFiles(ctx, target, c.upgradeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list upgrades in %s: %w", target.Name, err)
	}
	c.logger.Verbose("%d file(s) in %s, %d in %s", len(sourceEntries), source.Name, len(targetEntries), target.Name)

	existing := make(map[string]string, len(sourceEntries))
	for _, e := range sourceEntries {
		existing[e.Path] = e.BlobID
	}

	var candidates []candidate
	seen := make(map[uint64]string)
	for _, e := range targetEntries {
		name := path.Base(e.Path)
		if !strings.EqualFold(path.Ext(name), mkdbupgrade.FragmentExtension) {
			c.logger.Verbose("Skipping non-SQL file %s", e.Path)
			continue
		}
		if blob, ok := existing[e.Path]; ok {
			if blob == e.BlobID {
				continue
			}
			c.logger.Verbose("%s differs between %s and %s", e.Path, source.Name, target.Name)
		}

		key, err := SequenceKey(name)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %d is used by both %s and %s", mkdbupgrade.ErrDuplicateSequenceKey, key, prev, name)
		}
		seen[key] = name
		candidates = append(candidates, candidate{entry: e, name: name, key: key})
	}

	fragments := make([]mkdbupgrade.Fragment, 0, len(candidates))
	for _, cand := range candidates {
		content, err := c.vcs.ReadFile(ctx, target, cand.entry.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at %s: %w", cand.entry.Path, target.Name, err)
		}
		fragments = append(fragments, mkdbupgrade.Fragment{
			Path:        cand.entry.Path,
			Name:        cand.name,
			SequenceKey: cand.key,
			Content:     string(content),
			Checksum:    c.calculator.Sum(content),
		})
	}

	SortBySequence(fragments)
	return fragments, nil
}
