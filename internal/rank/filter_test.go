package rank_test

import (
	"strings"
	"testing"

	"github.com/ksnavely/dmp/internal/rank"
	"github.com/ksnavely/dmp/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const joinedFixture = `wmu  nres_1 nres_2 res_1  dmp_target
1A   0.1    0.1    0.5    10
2B   0.1    0.1    0.5    10
3A   0.1    0.1    0.5    max
3B   0.1    0.1    NA     10
3C   0.1    0.1    0.5    0
3D   0.1    0.1    LO/DV  10
3E   0.1    0.1    PP_REQ 10
4A   0.1    0.1    0.3    5
4T   0.1    0.1    0.5    10
4TX  0.1    0.1    0.5    10
5A   0.1    0.1    0.9    20
6G   0.1    0.1    0.5    10
7H   0.1    0.1    0.5    10
8C   0.1    0.1    0.5    10
9A   0.1    0.1    0.5    10
`

func readTable(t *testing.T, in string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(in), "fixture", table.LoadOptions{})
	require.NoError(t, err)
	return tbl
}

func stepNames(steps []rank.Step) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

func TestSteps_Order(t *testing.T) {
	base := []string{
		"drop-nonresident-columns",
		"drop-too-far-regions",
		"drop-exclusions",
		"drop-missing-res-1",
		"drop-zero-target",
		"drop-landowner-only",
	}
	assert.Equal(t, base, stepNames(rank.Steps(rank.DefaultRules())))

	rules := rank.DefaultRules()
	rules.ExcludePPReq = true
	withPP := append([]string{base[0], "drop-pp-req"}, base[1:]...)
	assert.Equal(t, withPP, stepNames(rank.Steps(rules)))
}

func TestFilter_DefaultRules(t *testing.T) {
	out, err := rank.Filter(readTable(t, joinedFixture), rank.DefaultRules(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"3A", "3E", "4A", "5A"}, out.Index())
	assert.Equal(t, []string{"res_1", "dmp_target"}, out.Columns)

	res := out.ColumnIndex("res_1")
	target := out.ColumnIndex("dmp_target")
	for _, r := range out.Rows {
		for _, p := range []string{"1", "2", "8", "9", "4T", "7H", "6G"} {
			assert.False(t, strings.HasPrefix(r.ID, p), "%s survived prefix %s", r.ID, p)
		}
		v, ok := out.Value(r, res)
		assert.True(t, ok)
		assert.NotEqual(t, "LO/DV", v)
		assert.NotEqual(t, "0", r.Values[target])
	}
}

func TestFilter_ExcludePPReq(t *testing.T) {
	rules := rank.DefaultRules()
	rules.ExcludePPReq = true
	out, err := rank.Filter(readTable(t, joinedFixture), rules, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3A", "4A", "5A"}, out.Index())
}

func TestFilter_CustomRules(t *testing.T) {
	rules := rank.Rules{TooFarRegions: []string{"3"}, Exclusions: []string{"5A"}}
	out, err := rank.Filter(readTable(t, joinedFixture), rules, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1A", "2B", "4A", "4T", "4TX", "6G", "7H", "8C", "9A"}, out.Index())
}

func TestFilter_EachStepIsolated(t *testing.T) {
	tbl := readTable(t, joinedFixture)
	steps := rank.Steps(rank.DefaultRules())

	dropped, err := steps[0].Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), dropped.Len())

	byName := map[string]rank.Step{}
	for _, s := range steps {
		byName[s.Name] = s
	}
	cases := map[string][]string{
		"drop-missing-res-1":  {"3B"},
		"drop-zero-target":    {"3C"},
		"drop-landowner-only": {"3D"},
		"drop-exclusions":     {"4T", "4TX", "6G", "7H"},
	}
	for name, gone := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := byName[name].Apply(dropped)
			require.NoError(t, err)
			assert.Equal(t, dropped.Len()-len(gone), out.Len())
			for _, id := range gone {
				assert.NotContains(t, out.Index(), id)
			}
		})
	}
}

func TestFilter_MissingColumn(t *testing.T) {
	_, err := rank.Filter(readTable(t, "wmu res_1 dmp_target\n3A 0.5 10\n"), rank.DefaultRules(), nil)
	require.ErrorIs(t, err, table.ErrUnknownColumn)
	assert.Contains(t, err.Error(), "drop-nonresident-columns")
}
