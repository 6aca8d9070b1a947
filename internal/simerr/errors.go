// Package simerr defines the sentinel error values returned across the
// simulation core's package boundaries. Structural errors are wrapped with
// github.com/pkg/errors at the point of construction so a stack trace is
// attached; runtime domain conditions (InvalidMove, SimulationOverrun) never
// reach this package since they surface as booleans or result flags instead
// of propagated errors.
package simerr

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a GameState is constructed with
	// non-positive width/height or fewer than 3 tile types. Fatal: the state
	// is never created.
	ErrInvalidDimensions = errors.New("match3core: invalid dimensions")

	// ErrRngStateCorrupt is returned by Stream.SetState when the caller
	// passes the reserved poison state. The prior stream state is left
	// untouched.
	ErrRngStateCorrupt = errors.New("match3core: rng state corrupt")
)

// Wrap attaches msg and a stack trace to err using pkg/errors, or returns nil
// if err is nil. Used at construction boundaries.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
