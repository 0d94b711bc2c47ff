package rank

import (
	"fmt"
	"math"
	"strconv"
)

// unboundedLiteral marks a unit with no permit cap in the source data.
const unboundedLiteral = "max"

// Target is the permit target of a unit: a count, or unbounded.
type Target struct {
	unbounded bool
	n         float64
}

// Numeric returns a bounded target of n permits.
func Numeric(n float64) Target { return Target{n: n} }

// Unbounded returns the target of a unit with no permit cap.
func Unbounded() Target { return Target{unbounded: true} }

// ParseTarget reads a dmp_target cell.
func ParseTarget(s string) (Target, error) {
	if s == unboundedLiteral {
		return Unbounded(), nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(n) || math.IsInf(n, 0)) {
		err = strconv.ErrSyntax
	}
	if err != nil {
		return Target{}, fmt.Errorf("parse target %q: %w", s, err)
	}
	return Numeric(n), nil
}

// IsUnbounded reports whether the unit has no permit cap.
func (t Target) IsUnbounded() bool { return t.unbounded }

// Permits returns the number of permits used for scoring. An unbounded target
// counts as capPerSqMile permits on every square mile of area.
func (t Target) Permits(area, capPerSqMile float64) float64 {
	if t.unbounded {
		return capPerSqMile * area
	}
	return t.n
}

// Density returns permits per square mile: the cap when unbounded, otherwise
// the published figure.
func (t Target) Density(published, capPerSqMile float64) float64 {
	if t.unbounded {
		return capPerSqMile
	}
	return published
}

func (t Target) String() string {
	if t.unbounded {
		return unboundedLiteral
	}
	return strconv.FormatFloat(t.n, 'f', -1, 64)
}
