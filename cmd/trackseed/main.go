// Command trackseed runs the seed finder over a space-point file and
// reports the seeds it finds.
//
// Usage:
//
//	trackseed -input hits.txt [-tuning config/tuning.defaults.json]
//	          [-workers 4] [-out seeds.csv] [-plots plots] [-max-groups N]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trackseed/internal/config"
	"github.com/banshee-data/trackseed/internal/monitoring"
	"github.com/banshee-data/trackseed/internal/seeding"
	"github.com/banshee-data/trackseed/internal/seeding/monitor"
	"github.com/banshee-data/trackseed/internal/spio"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "space point file (lxyz format)")
		tuningFile = flag.String("tuning", "", "JSON tuning overlay (optional)")
		workers    = flag.Int("workers", 1, "parallel group workers")
		outFile    = flag.String("out", "", "seed CSV output file (optional)")
		plotDir    = flag.String("plots", "", "diagnostic plot directory (optional)")
		maxGroups  = flag.Int("max-groups", 0, "stop after this many groups (0 = all)")
		regionCuts = flag.Bool("region-cuts", false, "enable the region-weighted experiment cuts")
	)
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*inputFile, *tuningFile, *outFile, *plotDir, *workers, *maxGroups, *regionCuts); err != nil {
		log.Fatalf("trackseed: %v", err)
	}
}

func run(inputFile, tuningFile, outFile, plotDir string, workers, maxGroups int, regionCuts bool) error {
	points, err := spio.ReadSpacePointFile(inputFile)
	if err != nil {
		return err
	}
	monitoring.Logf("read %d space points from %s", len(points), inputFile)

	cfg := seeding.DefaultConfig()
	if tuningFile != "" {
		tuning, err := config.Load(tuningFile)
		if err != nil {
			return err
		}
		cfg = tuning.Apply(cfg)
	}
	if regionCuts {
		cfg.Cuts = seeding.DefaultRegionWeightCuts()
	}

	finder, err := seeding.NewSeedfinder(cfg)
	if err != nil {
		return err
	}
	grid, err := seeding.BuildGrid(points, cfg)
	if err != nil {
		return err
	}
	monitoring.Logf("grid: %d phi bins x %d z bins, %d points binned",
		grid.PhiBins(), grid.ZBins(), grid.NumPoints())

	var plotter *monitor.OccupancyPlotter
	if plotDir != "" {
		plotter = monitor.NewOccupancyPlotter()
		if err := plotter.Start(monitor.MakePlotOutputDir(plotDir, inputFile)); err != nil {
			return err
		}
		plotter.SampleGrid(grid)
	}

	groups := seeding.CollectGroups(
		seeding.NewBinnedGroups(grid, seeding.NewBinFinder(), seeding.NewBinFinder()))
	if maxGroups > 0 && len(groups) > maxGroups {
		groups = groups[:maxGroups]
	}

	results, err := seedGroups(finder, groups, workers)
	if err != nil {
		return err
	}

	var all []seeding.Seed
	for _, seeds := range results {
		all = append(all, seeds...)
	}
	grid.RecordSeedQuality(all)

	stats := seeding.ComputeRunStats(results)
	runID := uuid.NewString()
	fmt.Printf("run %s: %d groups, %d seeds\n", runID, len(results), stats.Seeds)
	if stats.Seeds > 0 {
		fmt.Printf("weights: mean %.3f, stddev %.3f, median %.3f, p95 %.3f\n",
			stats.WeightMean, stats.WeightStdDev, stats.WeightMedian, stats.WeightP95)
		fmt.Printf("z vertex: mean %.2f, range [%.2f, %.2f]\n",
			stats.ZMean, stats.ZMin, stats.ZMax)
	}

	if outFile != "" {
		if err := spio.WriteSeedFile(outFile, results); err != nil {
			return err
		}
		monitoring.Logf("wrote %d seeds to %s", stats.Seeds, outFile)
	}
	if plotter != nil {
		plotter.RecordSeeds(all)
		plotter.Stop()
		n, err := plotter.GeneratePlots()
		if err != nil {
			return err
		}
		monitoring.Logf("wrote %d plots to %s", n, plotDir)
	}
	return nil
}

// seedGroups runs the finder over each group, fanning out over a
// bounded worker pool when workers > 1. Output order always matches
// group emission order.
func seedGroups(finder *seeding.Seedfinder, groups []seeding.Group, workers int) ([][]seeding.Seed, error) {
	results := make([][]seeding.Seed, len(groups))
	if workers <= 1 {
		for i, g := range groups {
			results[i] = finder.CreateSeedsForGroup(g.Bottom, g.Middle, g.Top)
		}
		return results, nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, g := range groups {
		eg.Go(func() error {
			results[i] = finder.CreateSeedsForGroup(g.Bottom, g.Middle, g.Top)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
