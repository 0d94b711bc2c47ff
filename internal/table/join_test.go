package table_test

import (
	"strings"
	"testing"

	"github.com/ksnavely/dmp/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, name, in string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(in), name, table.LoadOptions{})
	require.NoError(t, err)
	return tbl
}

func TestJoin_IdenticalIndexes(t *testing.T) {
	left := mustRead(t, "dmp", "wmu res_1 area\n3A 0.5 10\n4A 0.3 20\n5C 0.1 7\n")
	right := mustRead(t, "taken", "wmu total_sq_mile success_avg\n3A 4.1 0.4\n4A 2.0 0.6\n5C 1.5 0.2\n")

	out, err := table.Join(left, right)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, left.Index(), out.Index())
	assert.Equal(t, []string{"res_1", "area", "total_sq_mile", "success_avg"}, out.Columns)
	assert.Equal(t, []string{"0.3", "20", "2.0", "0.6"}, out.Rows[1].Values)
}

func TestJoin_MismatchedIndexes(t *testing.T) {
	left := mustRead(t, "dmp", "wmu a\n3A 1\n4A 2\n")
	cases := map[string]string{
		"different ids":   "wmu b\n3A 1\n4B 2\n",
		"different order": "wmu b\n4A 1\n3A 2\n",
		"subset":          "wmu b\n3A 1\n",
		"superset":        "wmu b\n3A 1\n4A 2\n5A 3\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := table.Join(left, mustRead(t, "taken", in))
			require.ErrorIs(t, err, table.ErrIndexMismatch)
			assert.Contains(t, err.Error(), "mismatched indexes")
		})
	}
}

func TestJoin_ColumnConflict(t *testing.T) {
	left := mustRead(t, "dmp", "wmu area\n3A 1\n")
	right := mustRead(t, "taken", "wmu area\n3A 1\n")
	_, err := table.Join(left, right)
	assert.ErrorIs(t, err, table.ErrColumnConflict)
}
