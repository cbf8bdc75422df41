package engine

import (
	"errors"
	"fmt"
)

// ErrConfig marks a configuration error: an invalid probability, a
// non-positive P_max, or a contradictory combination of flags. Configuration
// errors are reported synchronously at construction or Reset.
var ErrConfig = errors.New("engine: invalid configuration")

// ErrBounds marks an API-misuse error: a coordinate outside the current
// grid, or a seed placed on an occupied site.
var ErrBounds = errors.New("engine: out of bounds")

// ErrInvariant marks an internal invariant violation. These are fatal to the
// run in progress: the step that discovered them aborts rather than
// continuing with a grid that may already be corrupted.
var ErrInvariant = errors.New("engine: invariant violation")

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}
