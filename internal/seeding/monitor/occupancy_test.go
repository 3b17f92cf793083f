package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackseed/internal/seeding"
)

func buildTestGrid(t *testing.T) *seeding.Grid {
	t.Helper()
	points := []seeding.SpacePoint{
		seeding.NewSpacePoint(30, 0, 15, 0, 0, 0),
		seeding.NewSpacePoint(70, 0, 35, 1, 0, 0),
		seeding.NewSpacePoint(120, 0, 60, 2, 0, 0),
	}
	g, err := seeding.BuildGrid(points, seeding.DefaultConfig())
	require.NoError(t, err)
	return g
}

func TestOccupancyPlotterLifecycle(t *testing.T) {
	op := NewOccupancyPlotter()
	assert.False(t, op.IsEnabled())

	// Disabled plotters ignore samples.
	op.SampleGrid(buildTestGrid(t))
	op.RecordSeeds([]seeding.Seed{})
	_, err := op.GeneratePlots()
	assert.Error(t, err, "no output directory configured")

	dir := t.TempDir()
	require.NoError(t, op.Start(dir))
	assert.True(t, op.IsEnabled())

	op.Stop()
	assert.False(t, op.IsEnabled())
}

func TestOccupancyPlotterGeneratesPlots(t *testing.T) {
	op := NewOccupancyPlotter()
	dir := t.TempDir()
	require.NoError(t, op.Start(dir))

	g := buildTestGrid(t)
	op.SampleGrid(g)

	b := seeding.NewSpacePoint(30, 0, 15, 0, 0, 0)
	m := seeding.NewSpacePoint(70, 0, 35, 1, 0, 0)
	top := seeding.NewSpacePoint(120, 0, 60, 2, 0, 0)
	op.RecordSeeds([]seeding.Seed{{Bottom: &b, Middle: &m, Top: &top}})
	assert.Equal(t, 3, op.SampleCount())

	n, err := op.GeneratePlots()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, name := range []string{"grid_occupancy.png", "seed_points.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestMakePlotOutputDir(t *testing.T) {
	dir := MakePlotOutputDir("plots", "/data/hits_run42.txt")
	assert.Contains(t, dir, filepath.Join("plots", "hits_run42"))

	dir = MakePlotOutputDir("plots", "")
	assert.Contains(t, dir, filepath.Join("plots", "run_"))
}
