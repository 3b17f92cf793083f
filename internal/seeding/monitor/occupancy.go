// Package monitor renders diagnostic plots for seeding runs: grid
// occupancy heat maps and seed r-z scatter plots. Plotting is strictly
// driver-side; the seeding pipeline itself never draws.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/banshee-data/trackseed/internal/seeding"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// OccupancyPlotter accumulates grid and seed samples for one run and
// renders them to PNG files after the run completes.
type OccupancyPlotter struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string

	phiBins   int
	zBins     int
	occupancy []float64

	seedPoints plotter.XYs
}

// NewOccupancyPlotter creates a disabled plotter; call Start to begin
// recording.
func NewOccupancyPlotter() *OccupancyPlotter {
	return &OccupancyPlotter{}
}

// Start enables recording and creates the output directory.
func (op *OccupancyPlotter) Start(outputDir string) error {
	op.mu.Lock()
	defer op.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	op.outputDir = outputDir
	op.enabled = true
	op.occupancy = nil
	op.seedPoints = op.seedPoints[:0]
	return nil
}

// Stop disables recording. Call GeneratePlots to produce output files.
func (op *OccupancyPlotter) Stop() {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.enabled = false
}

// IsEnabled reports whether the plotter is currently recording.
func (op *OccupancyPlotter) IsEnabled() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.enabled
}

// SampleGrid snapshots the per-bin point counts of a built grid.
func (op *OccupancyPlotter) SampleGrid(g *seeding.Grid) {
	op.mu.Lock()
	defer op.mu.Unlock()
	if !op.enabled || g == nil {
		return
	}

	op.phiBins = g.PhiBins()
	op.zBins = g.ZBins()
	op.occupancy = make([]float64, op.phiBins*op.zBins)
	for iz := 0; iz < op.zBins; iz++ {
		for ip := 0; ip < op.phiBins; ip++ {
			n := len(g.Bin(seeding.BinCoord{Phi: ip, Z: iz}))
			op.occupancy[iz*op.phiBins+ip] = float64(n)
		}
	}
}

// RecordSeeds adds the (z, r) positions of each seed's three points to
// the scatter sample.
func (op *OccupancyPlotter) RecordSeeds(seeds []seeding.Seed) {
	op.mu.Lock()
	defer op.mu.Unlock()
	if !op.enabled {
		return
	}
	for _, s := range seeds {
		for _, sp := range [...]*seeding.SpacePoint{s.Bottom, s.Middle, s.Top} {
			op.seedPoints = append(op.seedPoints, plotter.XY{X: sp.Z, Y: sp.R})
		}
	}
}

// SampleCount returns the number of recorded seed points.
func (op *OccupancyPlotter) SampleCount() int {
	op.mu.Lock()
	defer op.mu.Unlock()
	return len(op.seedPoints)
}

// GeneratePlots writes the recorded samples as PNG files and returns
// how many plots were produced.
func (op *OccupancyPlotter) GeneratePlots() (int, error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.outputDir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}

	count := 0
	if len(op.occupancy) > 0 {
		if err := op.generateOccupancyPlot(); err != nil {
			return count, fmt.Errorf("occupancy plot: %w", err)
		}
		count++
	}
	if len(op.seedPoints) > 0 {
		if err := op.generateSeedScatter(); err != nil {
			return count, fmt.Errorf("seed scatter: %w", err)
		}
		count++
	}
	return count, nil
}

// occupancyGrid adapts the sampled bin counts to the plotter's
// GridXYZ interface. Columns are phi bins, rows are z bins.
type occupancyGrid struct {
	phiBins int
	zBins   int
	values  []float64
}

func (g occupancyGrid) Dims() (int, int)   { return g.phiBins, g.zBins }
func (g occupancyGrid) Z(c, r int) float64 { return g.values[r*g.phiBins+c] }
func (g occupancyGrid) X(c int) float64    { return float64(c) }
func (g occupancyGrid) Y(r int) float64    { return float64(r) }

func (op *OccupancyPlotter) generateOccupancyPlot() error {
	p := plot.New()
	p.Title.Text = "Space point grid occupancy"
	p.X.Label.Text = "phi bin"
	p.Y.Label.Text = "z bin"

	hm := plotter.NewHeatMap(occupancyGrid{
		phiBins: op.phiBins,
		zBins:   op.zBins,
		values:  op.occupancy,
	}, palette.Heat(12, 1))
	p.Add(hm)

	out := filepath.Join(op.outputDir, "grid_occupancy.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return fmt.Errorf("save occupancy plot: %w", err)
	}
	return nil
}

func (op *OccupancyPlotter) generateSeedScatter() error {
	p := plot.New()
	p.Title.Text = "Seed space points"
	p.X.Label.Text = "z (mm)"
	p.Y.Label.Text = "r (mm)"

	sc, err := plotter.NewScatter(op.seedPoints)
	if err != nil {
		return err
	}
	p.Add(sc)

	out := filepath.Join(op.outputDir, "seed_points.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return fmt.Errorf("save seed scatter: %w", err)
	}
	return nil
}

// MakePlotOutputDir creates a timestamped output directory for plots
// under baseDir, keyed by the input file's basename.
func MakePlotOutputDir(baseDir, inputFile string) string {
	ts := time.Now().Format("20060102_150405")
	if inputFile != "" {
		base := filepath.Base(inputFile)
		ext := filepath.Ext(base)
		name := base[:len(base)-len(ext)]
		return filepath.Join(baseDir, name, ts)
	}
	return filepath.Join(baseDir, "run_"+ts)
}
