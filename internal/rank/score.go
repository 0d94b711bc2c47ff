package rank

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ksnavely/dmp/internal/table"
)

// DefaultCapPerSqMile is the permit density assumed for unbounded targets.
const DefaultCapPerSqMile = 50

// Derived column names appended to scored output.
const (
	ColS1         = "s1"
	ColDMPsSqMile = "dmps_sq_mile"
)

// ErrDegenerateScore is returned when the best raw score cannot normalize the rest.
var ErrDegenerateScore = errors.New("maximum s1 is not positive")

// FieldError reports a cell that should hold a number but does not.
type FieldError struct {
	WMU    string
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("wmu %s: %s is missing", e.WMU, e.Column)
	}
	return fmt.Sprintf("wmu %s: %s=%q is not numeric", e.WMU, e.Column, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ScoreOptions tunes the scorer.
type ScoreOptions struct {
	// CapPerSqMile replaces the permit density of unbounded units. Zero means DefaultCapPerSqMile.
	CapPerSqMile float64
}

// Unit is a scored WMU. Values keep the surviving source columns.
type Unit struct {
	ID          string
	Values      []string
	Target      Target
	TargetDMPs  float64
	SuccessAvg  float64
	TotalSqMile float64
	S1          float64
	DMPsSqMile  float64
}

// Scored is the filtered table with derived measures, in table order.
type Scored struct {
	Columns []string
	Units   []Unit
}

// Score computes s1 and dmps_sq_mile for every row, then normalizes s1 by its maximum.
func Score(t *table.Table, opt ScoreOptions) (*Scored, error) {
	capPerSqMile := opt.CapPerSqMile
	if capPerSqMile == 0 {
		capPerSqMile = DefaultCapPerSqMile
	}
	cols := map[string]int{}
	for _, name := range []string{ColTarget, ColArea, ColSuccessAvg, ColTotalSqMile, ColDMPPerSqMile} {
		i, err := t.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("score: %w", err)
		}
		cols[name] = i
	}

	out := &Scored{Columns: append([]string(nil), t.Columns...)}
	out.Units = make([]Unit, 0, t.Len())
	best := math.Inf(-1)
	for _, r := range t.Rows {
		u, err := scoreRow(t, r, cols, capPerSqMile)
		if err != nil {
			return nil, err
		}
		if u.S1 > best {
			best = u.S1
		}
		out.Units = append(out.Units, u)
	}
	if len(out.Units) == 0 {
		return out, nil
	}
	if !(best > 0) {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateScore, best)
	}
	for i := range out.Units {
		out.Units[i].S1 /= best
	}
	return out, nil
}

func scoreRow(t *table.Table, r table.Row, cols map[string]int, capPerSqMile float64) (Unit, error) {
	u := Unit{ID: r.ID, Values: r.Values}
	raw, _ := t.Value(r, cols[ColTarget])
	target, err := ParseTarget(raw)
	if err != nil {
		return Unit{}, &FieldError{WMU: r.ID, Column: ColTarget, Value: raw, Err: err}
	}
	u.Target = target

	num := func(col string) (float64, error) {
		v, _ := t.Value(r, cols[col])
		f, err := strconv.ParseFloat(v, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = strconv.ErrSyntax
		}
		if err != nil {
			return 0, &FieldError{WMU: r.ID, Column: col, Value: v, Err: err}
		}
		return f, nil
	}

	if target.IsUnbounded() {
		area, err := num(ColArea)
		if err != nil {
			return Unit{}, err
		}
		u.TargetDMPs = target.Permits(area, capPerSqMile)
	} else {
		u.TargetDMPs = target.Permits(0, capPerSqMile)
	}
	if u.SuccessAvg, err = num(ColSuccessAvg); err != nil {
		return Unit{}, err
	}
	if u.TotalSqMile, err = num(ColTotalSqMile); err != nil {
		return Unit{}, err
	}
	u.S1 = u.TotalSqMile * u.SuccessAvg * u.TargetDMPs

	published := 0.0
	if !target.IsUnbounded() {
		if published, err = num(ColDMPPerSqMile); err != nil {
			return Unit{}, err
		}
	}
	u.DMPsSqMile = target.Density(published, capPerSqMile)
	return u, nil
}
