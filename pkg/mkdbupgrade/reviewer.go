package mkdbupgrade

import "context"

// Reviewer opens a written script for the operator to inspect or edit.
//
// Implementations:
//   - EditorReviewer: runs the configured editor and waits for it to exit
type Reviewer interface {
	Review(ctx context.Context, path string) error
}
