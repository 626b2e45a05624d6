// Package errs holds the error kinds shared by the terrain pipeline.
// Callers match them with errors.Is; the packages that raise them wrap
// the sentinel with the offending values.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration covers missing or contradictory reference modes,
	// degenerate lattices and conflicting output modes. Raised before any
	// sampling starts.
	ErrConfiguration = errors.New("configuration error")

	// ErrTileLoad marks a tile payload that could not be read. It is
	// recorded per tile and does not stop other queries.
	ErrTileLoad = errors.New("tile load error")

	// ErrCoverage means at least one lattice point has no elevation.
	ErrCoverage = errors.New("coverage error")

	// ErrIntegrity means a built mesh broke its own invariants.
	ErrIntegrity = errors.New("integrity error")
)

// Configf wraps ErrConfiguration with a formatted message.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Integrityf wraps ErrIntegrity with a formatted message.
func Integrityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}
