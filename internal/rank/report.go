package rank

import "sort"

// DefaultTop is the number of units shown per report.
const DefaultTop = 10

// View is one sorted report over the scored units.
type View struct {
	Title   string
	Key     string
	Measure func(Unit) float64
}

// Views returns the three stock reports in the order they are produced.
func Views() []View {
	return []View{
		{
			Title:   "**** Sorted by s1: (deer taken / sq mile) * (dmp success avg) * (num target dmps)",
			Key:     ColS1,
			Measure: func(u Unit) float64 { return u.S1 },
		},
		{
			Title:   "**** Sorted by deer taken / sq mile",
			Key:     ColTotalSqMile,
			Measure: func(u Unit) float64 { return u.TotalSqMile },
		},
		{
			Title:   "**** Sorted by dmps per square mile (50 if max total dmps)",
			Key:     ColDMPsSqMile,
			Measure: func(u Unit) float64 { return u.DMPsSqMile },
		},
	}
}

// Report is the head of one view.
type Report struct {
	Title   string
	Key     string
	Columns []string
	Units   []Unit
}

// Rank sorts the scored units once per view, descending and stable, each view
// starting from the order left by the previous one. Every report keeps the
// first top units (DefaultTop when top <= 0).
func Rank(s *Scored, views []View, top int) []Report {
	if top <= 0 {
		top = DefaultTop
	}
	order := make([]Unit, len(s.Units))
	copy(order, s.Units)

	reports := make([]Report, 0, len(views))
	for _, v := range views {
		SortDescending(order, v.Measure)
		n := top
		if len(order) < n {
			n = len(order)
		}
		head := make([]Unit, n)
		copy(head, order[:n])
		reports = append(reports, Report{Title: v.Title, Key: v.Key, Columns: s.Columns, Units: head})
	}
	return reports
}

// SortDescending orders units by measure, largest first. Equal values keep
// their current relative order.
func SortDescending(units []Unit, measure func(Unit) float64) {
	sort.SliceStable(units, func(i, j int) bool {
		return measure(units[i]) > measure(units[j])
	})
}
