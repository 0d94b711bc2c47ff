package rank

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ksnavely/dmp/internal/table"
)

// Column names consumed by the filter and scorer.
const (
	ColNonRes1      = "nres_1"
	ColNonRes2      = "nres_2"
	ColRes1         = "res_1"
	ColTarget       = "dmp_target"
	ColArea         = "area"
	ColSuccessAvg   = "success_avg"
	ColDMPPerSqMile = "dmp_per_sq_mile"
	ColTotalSqMile  = "total_sq_mile"
)

// Sentinel values found in the resident probability column.
const (
	PreferencePointsRequired = "PP_REQ"
	LandownerOnly            = "LO/DV"
)

// Rules holds the exclusion lists applied by Filter.
type Rules struct {
	// TooFarRegions are region-number prefixes dropped for distance.
	TooFarRegions []string
	// Exclusions are identifier prefixes dropped for other reasons.
	Exclusions []string
	// ExcludePPReq drops units that require preference points.
	ExcludePPReq bool
}

// DefaultRules returns the stock exclusion lists.
func DefaultRules() Rules {
	return Rules{
		TooFarRegions: []string{"1", "2", "8", "9"},
		Exclusions: []string{
			"4T", // tidal flats
			"7H", // no public land
			"6G", // too far
		},
	}
}

// Step is one named, order-dependent transformation of the joined table.
type Step struct {
	Name  string
	Apply func(*table.Table) (*table.Table, error)
}

// Steps returns the filter chain for rules, in application order.
func Steps(rules Rules) []Step {
	steps := []Step{
		{Name: "drop-nonresident-columns", Apply: dropNonResident},
	}
	if rules.ExcludePPReq {
		steps = append(steps, Step{Name: "drop-pp-req", Apply: dropColumnEquals(ColRes1, PreferencePointsRequired)})
	}
	steps = append(steps,
		Step{Name: "drop-too-far-regions", Apply: dropIDPrefixes(rules.TooFarRegions)},
		Step{Name: "drop-exclusions", Apply: dropIDPrefixes(rules.Exclusions)},
		Step{Name: "drop-missing-res-1", Apply: dropMissing(ColRes1)},
		Step{Name: "drop-zero-target", Apply: dropColumnEquals(ColTarget, "0")},
		Step{Name: "drop-landowner-only", Apply: dropColumnEquals(ColRes1, LandownerOnly)},
	)
	return steps
}

// Filter applies the rule chain in order and returns the surviving table.
func Filter(t *table.Table, rules Rules, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = discardLogger()
	}
	cur := t
	for _, s := range Steps(rules) {
		before := cur.Len()
		next, err := s.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", s.Name, err)
		}
		logger.Debug("filter step", "step", s.Name, "dropped", before-next.Len(), "remaining", next.Len())
		cur = next
	}
	return cur, nil
}

func dropNonResident(t *table.Table) (*table.Table, error) {
	return t.DropColumns(ColNonRes1, ColNonRes2)
}

func dropIDPrefixes(prefixes []string) func(*table.Table) (*table.Table, error) {
	return func(t *table.Table) (*table.Table, error) {
		return t.Filter(func(r table.Row) bool {
			for _, p := range prefixes {
				if strings.HasPrefix(r.ID, p) {
					return false
				}
			}
			return true
		}), nil
	}
}

func dropMissing(col string) func(*table.Table) (*table.Table, error) {
	return func(t *table.Table) (*table.Table, error) {
		i, err := t.Lookup(col)
		if err != nil {
			return nil, err
		}
		return t.Filter(func(r table.Row) bool {
			_, ok := t.Value(r, i)
			return ok
		}), nil
	}
}

// dropColumnEquals drops rows whose cell equals val. Missing cells never match.
func dropColumnEquals(col, val string) func(*table.Table) (*table.Table, error) {
	return func(t *table.Table) (*table.Table, error) {
		i, err := t.Lookup(col)
		if err != nil {
			return nil, err
		}
		return t.Filter(func(r table.Row) bool {
			v, ok := t.Value(r, i)
			return !ok || v != val
		}), nil
	}
}
