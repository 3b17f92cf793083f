package seeding

import (
	"math"
	"sort"
)

// SeedFilter scores and reduces the triplets found for one middle
// space point. The filter holds no per-call state; a single instance
// serves parallel group calls.
type SeedFilter struct {
	cfg  FilterConfig
	cuts ExperimentCuts
}

// NewSeedFilter builds a filter; nil cuts selects NoCuts.
func NewSeedFilter(cfg FilterConfig, cuts ExperimentCuts) *SeedFilter {
	if cuts == nil {
		cuts = NoCuts{}
	}
	return &SeedFilter{cfg: cfg, cuts: cuts}
}

// filter2SpFixed weighs every triplet sharing the fixed (bottom,
// middle) pair and appends the keepers to dst. tops, curvatures and
// impacts are parallel slices from the triplet search; zOrigin is the
// bottom duplet's beam origin.
//
// The weight starts as the impact-parameter penalty and gains
// CompatSeedWeight for every other top that lies on the same helix
// (curvature within DeltaInvHelixDiameter) at a genuinely different
// radius (at least DeltaRMin from the candidate and from every top
// already counted). At most CompatSeedLimit bonuses are granted.
func (sf *SeedFilter) filter2SpFixed(bottom, middle *InternalSpacePoint,
	tops []*InternalSpacePoint, curvatures, impacts []float64,
	zOrigin float64, dst []Candidate) []Candidate {

	var compatR []float64
	for i, top := range tops {
		lowerCurv := curvatures[i] - sf.cfg.DeltaInvHelixDiameter
		upperCurv := curvatures[i] + sf.cfg.DeltaInvHelixDiameter
		weight := -(impacts[i] * sf.cfg.ImpactWeightFactor)

		compatR = compatR[:0]
		for j, other := range tops {
			if len(compatR) >= sf.cfg.CompatSeedLimit {
				break
			}
			if j == i {
				continue
			}
			deltaR := top.R - other.R
			if math.Abs(deltaR) < sf.cfg.DeltaRMin {
				continue
			}
			if curvatures[j] < lowerCurv || curvatures[j] > upperCurv {
				continue
			}
			newCompat := true
			for _, prevR := range compatR {
				if math.Abs(prevR-other.R) < sf.cfg.DeltaRMin {
					newCompat = false
					break
				}
			}
			if newCompat {
				compatR = append(compatR, other.R)
				weight += sf.cfg.CompatSeedWeight
			}
		}

		weight += sf.cuts.SeedWeight(bottom, middle, top)
		if !sf.cuts.SingleSeedCut(weight, bottom, middle, top) {
			continue
		}
		dst = append(dst, Candidate{
			Bottom: bottom,
			Middle: middle,
			Top:    top,
			Z:      zOrigin,
			Weight: weight,
		})
	}
	return dst
}

// filter1SpFixed reduces the candidates of one fully-processed middle
// point and appends the survivors to dst as Seeds. Candidates are
// ordered by descending weight, ties broken on (top R, bottom R,
// top z, bottom z) ascending, capped at MaxSeedsPerSpM, then handed
// to the experiment's CutPerMiddleSP for final pruning.
func (sf *SeedFilter) filter1SpFixed(candidates []Candidate, dst []Seed) []Seed {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.Top.R != b.Top.R {
			return a.Top.R < b.Top.R
		}
		if a.Bottom.R != b.Bottom.R {
			return a.Bottom.R < b.Bottom.R
		}
		if a.Top.Z != b.Top.Z {
			return a.Top.Z < b.Top.Z
		}
		return a.Bottom.Z < b.Bottom.Z
	})

	if len(candidates) > sf.cfg.MaxSeedsPerSpM {
		candidates = candidates[:sf.cfg.MaxSeedsPerSpM]
	}
	candidates = sf.cuts.CutPerMiddleSP(candidates)

	for _, c := range candidates {
		dst = append(dst, Seed{
			Bottom: c.Bottom.Source,
			Middle: c.Middle.Source,
			Top:    c.Top.Source,
			Weight: c.Weight,
			Z:      c.Z,
		})
	}
	return dst
}
