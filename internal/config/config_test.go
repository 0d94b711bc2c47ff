package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ksnavely/dmp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)

	d := config.Defaults()
	assert.Equal(t, d, *c)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DMP_TOP_N", "3")
	t.Setenv("DMP_EXCLUDE_PP_REQ", "true")
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, c.TopN)
	assert.True(t, c.ExcludePPReq)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := config.Defaults()
	c.Exclusions = []string{"4T"}
	c.MaxDMPsPerSqMile = 25
	c.DMPFile = "/data/dmp_2017.csv"
	require.NoError(t, config.Save(&c, path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"4T"}, got.Exclusions)
	assert.Equal(t, 25.0, got.MaxDMPsPerSqMile)
	assert.Equal(t, "/data/dmp_2017.csv", got.DMPFile)
	assert.Equal(t, "total_taken.csv", got.TakenFile)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_dmps_per_sq_mile: 0\n"), 0o644))
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsEmptyPrefix(t *testing.T) {
	for _, body := range []string{
		"exclusions: [\"4T\", \"\"]\n",
		"too_far_regions: [\" \"]\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "empty prefix", body)
	}
}
