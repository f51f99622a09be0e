package mkdbupgrade

import "context"

// Builder produces an upgrade script between two references.
type Builder interface {
	// Build runs the whole pipeline once. Nothing is written unless every
	// earlier stage succeeded.
	Build(ctx context.Context, cfg BuildConfig) (*BuildResult, error)
}
