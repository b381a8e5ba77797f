package decimate

import "github.com/pkg/errors"

// ErrInvalidInput is returned, wrapped with the offending detail, when the
// input mesh is empty, has non triangular or degenerate cells, references
// missing points or carries non finite coordinates. No output is produced.
var ErrInvalidInput = errors.New("invalid input mesh")

// declineReason records why a deletable looking vertex was kept.
type declineReason int

const (
	declineNone declineReason = iota
	declineComplex
	declinePreserved
	declineErrorBound
	declineSplit
	declineTriangulation
)
