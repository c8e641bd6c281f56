package randfield

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidParameter indicates a non-positive variance or range, or a malformed option.
	ErrInvalidParameter = errors.New("randfield: invalid parameter")
	// ErrIllConditioned indicates the covariance matrix could not be factorized.
	ErrIllConditioned = errors.New("randfield: ill-conditioned covariance matrix")
	// ErrNoLocations indicates an empty location set.
	ErrNoLocations = errors.New("randfield: no locations")
	// ErrShape indicates mismatched slice lengths or grid dimensions.
	ErrShape = errors.New("randfield: shape mismatch")
)

// IllConditionedError is returned when the Cholesky factorization of a
// covariance matrix fails. Pairs lists near-duplicate locations, if any were found.
type IllConditionedError struct {
	N     int
	Cond  float64
	Pairs PairList
}

func (e *IllConditionedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v (n=%d", ErrIllConditioned, e.N)
	if e.Cond > 0 {
		fmt.Fprintf(&sb, ", cond=%.3g", e.Cond)
	}
	sb.WriteString(")")
	if len(e.Pairs) > 0 {
		sb.WriteString(": near-duplicate locations")
		for i, p := range e.Pairs {
			if i == 8 {
				fmt.Fprintf(&sb, " and %d more", len(e.Pairs)-i)
				break
			}
			fmt.Fprintf(&sb, " %d~%d", p[0], p[1])
		}
	}
	return sb.String()
}

func (e *IllConditionedError) Is(target error) bool {
	return target == ErrIllConditioned
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidParameter}, args...)...)
}
