package seeding

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunStats summarises a seeding run for reporting.
type RunStats struct {
	Seeds int

	WeightMean   float64
	WeightStdDev float64
	WeightMedian float64
	WeightP95    float64

	ZMean float64
	ZMin  float64
	ZMax  float64
}

// ComputeRunStats aggregates the seeds of one or more groups.
func ComputeRunStats(groups [][]Seed) RunStats {
	var weights, zs []float64
	for _, seeds := range groups {
		for _, s := range seeds {
			weights = append(weights, s.Weight)
			zs = append(zs, s.Z)
		}
	}
	st := RunStats{Seeds: len(weights)}
	if st.Seeds == 0 {
		return st
	}

	st.WeightMean = stat.Mean(weights, nil)
	st.WeightStdDev = 0
	if st.Seeds > 1 {
		st.WeightStdDev = stat.StdDev(weights, nil)
	}

	sort.Float64s(weights)
	st.WeightMedian = stat.Quantile(0.5, stat.Empirical, weights, nil)
	st.WeightP95 = stat.Quantile(0.95, stat.Empirical, weights, nil)

	st.ZMean = stat.Mean(zs, nil)
	st.ZMin, st.ZMax = zs[0], zs[0]
	for _, z := range zs {
		if z < st.ZMin {
			st.ZMin = z
		}
		if z > st.ZMax {
			st.ZMax = z
		}
	}
	return st
}
