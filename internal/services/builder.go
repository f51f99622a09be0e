package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cwmars/mkdbupgrade/internal/checksum"
	"github.com/cwmars/mkdbupgrade/internal/files/filesystem"
	"github.com/cwmars/mkdbupgrade/internal/fragment"
	"github.com/cwmars/mkdbupgrade/internal/output"
	"github.com/cwmars/mkdbupgrade/internal/script"
	"github.com/cwmars/mkdbupgrade/internal/sidecontent"
	"github.com/cwmars/mkdbupgrade/internal/version"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

// BuilderOption configures an UpgradeBuilder.
type BuilderOption func(*UpgradeBuilder)

// WithReviewer sets the reviewer used when BuildConfig.Review is true.
func WithReviewer(r mkdbupgrade.Reviewer) BuilderOption {
	return func(b *UpgradeBuilder) { b.reviewer = r }
}

// WithToolVersion sets the version recorded in the script header.
func WithToolVersion(v string) BuilderOption {
	return func(b *UpgradeBuilder) { b.toolVersion = v }
}

// WithClock replaces time.Now for the header timestamp.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *UpgradeBuilder) { b.now = now }
}

// WithRunID replaces the run identifier generator.
func WithRunID(f func() string) BuilderOption {
	return func(b *UpgradeBuilder) { b.newRunID = f }
}

// WithCalculator replaces the fragment checksum calculator.
func WithCalculator(c checksum.Calculator) BuilderOption {
	return func(b *UpgradeBuilder) { b.calculator = c }
}

// UpgradeBuilder implements the Builder interface.
// Thread-Safety: NOT safe for concurrent Build() calls on the same instance.
type UpgradeBuilder struct {
	vcs         mkdbupgrade.VersionControl
	fs          filesystem.FileSystemProvider
	logger      mkdbupgrade.Logger
	calculator  checksum.Calculator
	reviewer    mkdbupgrade.Reviewer
	toolVersion string
	now         func() time.Time
	newRunID    func() string
}

// NewUpgradeBuilder creates an UpgradeBuilder with all dependencies injected.
// Panics on nil dependencies; those are wiring mistakes, not runtime conditions.
func NewUpgradeBuilder(
	vcs mkdbupgrade.VersionControl,
	fsProvider filesystem.FileSystemProvider,
	logger mkdbupgrade.Logger,
	opts ...BuilderOption,
) *UpgradeBuilder {
	if vcs == nil {
		panic("vcs cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	b := &UpgradeBuilder{
		vcs:        vcs,
		fs:         fsProvider,
		logger:     logger,
		calculator: checksum.New(),
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the pipeline once. Every check that can fail runs before the
// script is written, and the write itself is atomic.
func (b *UpgradeBuilder) Build(ctx context.Context, cfg mkdbupgrade.BuildConfig) (*mkdbupgrade.BuildResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Review && !cfg.DryRun && b.reviewer == nil {
		return nil, fmt.Errorf("%w: review requested", mkdbupgrade.ErrEditorNotConfigured)
	}

	toRef, err := b.targetReferenceName(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fromVersion, err := version.Resolve(cfg.FromRef, cfg.FromVersion)
	if err != nil {
		return nil, fmt.Errorf("%w; use --from-version to set it", err)
	}
	toVersion, err := version.Resolve(toRef, cfg.ToVersion)
	if err != nil {
		return nil, fmt.Errorf("%w; use --to-version to set it", err)
	}
	b.logger.Verbose("Upgrading from %s (%s) to %s (%s)", fromVersion, cfg.FromRef, toVersion, toRef)

	outputPath := filepath.Join(b.resolve(cfg, cfg.OutputDir), output.FileName(cfg.Prefix, fromVersion, toVersion))
	writer := output.NewWriter(b.fs)
	if !cfg.DryRun {
		if err := writer.Check(outputPath, cfg.Overwrite); err != nil {
			return nil, err
		}
	}

	prepend, appendix, err := sidecontent.NewLoader(b.fs, b.logger).Load(
		b.resolveAll(cfg, cfg.PrependFiles),
		b.resolveAll(cfg, cfg.AppendFiles),
	)
	if err != nil {
		return nil, err
	}

	from, err := b.vcs.ResolveReference(ctx, cfg.FromRef)
	if err != nil {
		return nil, err
	}
	to, err := b.vcs.ResolveReference(ctx, toRef)
	if err != nil {
		return nil, err
	}
	b.logger.Verbose("Resolved %s and %s", from, to)

	collector := fragment.NewCollector(b.vcs, b.calculator, b.logger, filepath.ToSlash(cfg.UpgradeDir))
	fragments, err := collector.Collect(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("%w: %s has nothing in %s that %s lacks", mkdbupgrade.ErrNoFragments, to.Name, cfg.UpgradeDir, from.Name)
	}

	mergeable, standalone := fragment.Classify(fragments, cfg.MovePatterns)
	b.logger.Info("Found %d upgrades: %d merged, %d moved", len(fragments), len(mergeable), len(standalone))
	for _, f := range standalone {
		b.logger.Verbose("Moving %s out of the main transaction", f.Name)
	}

	content, sources := script.AssembleWithMap(script.Script{
		Header: script.Header{
			ProductName: b.productName(cfg),
			FromVersion: fromVersion,
			ToVersion:   toVersion,
			FromRef:     from.String(),
			ToRef:       to.String(),
			ToolVersion: b.toolVersion,
			RunID:       b.newRunID(),
			GeneratedAt: b.now().UTC(),
		},
		Prepend:       prepend,
		Mergeable:     mergeable,
		Standalone:    standalone,
		Append:        appendix,
		AuditorUpdate: cfg.AuditorUpdate,
	})

	result := &mkdbupgrade.BuildResult{
		OutputPath:  outputPath,
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		From:        from,
		To:          to,
		Merged:      mergeable,
		Standalone:  standalone,
		Script:      content,
		Sources:     sources.Entries(),
	}

	if cfg.DryRun {
		b.logger.Verbose("Dry run: not writing %s", outputPath)
		return result, nil
	}

	if err := writer.Write(outputPath, content, cfg.Overwrite); err != nil {
		return nil, err
	}
	result.Written = true
	b.logger.Verbose("Wrote %d bytes to %s", len(content), outputPath)

	if cfg.Review {
		if err := b.reviewer.Review(ctx, outputPath); err != nil {
			return result, fmt.Errorf("script written to %s but review failed: %w", outputPath, err)
		}
	}
	return result, nil
}

// targetReferenceName picks the explicit target, else the checked-out branch.
// A detached checkout yields "HEAD".
func (b *UpgradeBuilder) targetReferenceName(ctx context.Context, cfg mkdbupgrade.BuildConfig) (string, error) {
	if cfg.ToRef != "" {
		return cfg.ToRef, nil
	}
	branch, err := b.vcs.CurrentBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to determine the current branch: %w", err)
	}
	if branch == "" {
		return "", errors.New("failed to determine the current branch")
	}
	b.logger.Verbose("Using current branch %s as target", branch)
	return branch, nil
}

func (b *UpgradeBuilder) productName(cfg mkdbupgrade.BuildConfig) string {
	if cfg.ProductName != "" {
		return cfg.ProductName
	}
	return mkdbupgrade.DefaultProductName
}

// resolve anchors a relative path at the repository root.
func (b *UpgradeBuilder) resolve(cfg mkdbupgrade.BuildConfig, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cfg.RepoRoot, p)
}

func (b *UpgradeBuilder) resolveAll(cfg mkdbupgrade.BuildConfig, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = b.resolve(cfg, p)
	}
	return out
}

var _ mkdbupgrade.Builder = (*UpgradeBuilder)(nil)
