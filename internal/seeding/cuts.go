package seeding

// ExperimentCuts lets an experiment adjust seed weights and apply its
// own selection on top of the default filter. The pipeline works with
// the no-op implementation and never introspects the plug-in.
type ExperimentCuts interface {
	// SeedWeight returns a weight bonus or malus for the triplet.
	SeedWeight(bottom, middle, top *InternalSpacePoint) float64

	// SingleSeedCut reports whether a triplet with the given final
	// weight should be kept.
	SingleSeedCut(weight float64, bottom, middle, top *InternalSpacePoint) bool

	// CutPerMiddleSP prunes the capped, weight-ordered candidate
	// list of one middle point. Implementations must not reorder
	// entries within weight ties and must not introduce entries.
	CutPerMiddleSP(candidates []Candidate) []Candidate
}

// NoCuts is the default pass-through implementation.
type NoCuts struct{}

// SeedWeight returns zero.
func (NoCuts) SeedWeight(_, _, _ *InternalSpacePoint) float64 { return 0 }

// SingleSeedCut keeps every seed.
func (NoCuts) SingleSeedCut(_ float64, _, _, _ *InternalSpacePoint) bool { return true }

// CutPerMiddleSP returns the list unchanged.
func (NoCuts) CutPerMiddleSP(candidates []Candidate) []Candidate { return candidates }

var _ ExperimentCuts = NoCuts{}

// RegionWeightCuts favours seeds anchored in the outer detector
// region: triplets whose bottom point sits beyond RegionRadius gain
// BottomBonus, triplets fully inside gain TopBonus, and outer-region
// seeds below MinOuterWeight are discarded.
type RegionWeightCuts struct {
	RegionRadius   float64
	BottomBonus    float64
	TopBonus       float64
	MinOuterWeight float64
}

// DefaultRegionWeightCuts returns the reference tuning for a 150 mm
// region boundary.
func DefaultRegionWeightCuts() RegionWeightCuts {
	return RegionWeightCuts{
		RegionRadius:   150,
		BottomBonus:    400,
		TopBonus:       200,
		MinOuterWeight: 380,
	}
}

// SeedWeight implements ExperimentCuts.
func (c RegionWeightCuts) SeedWeight(bottom, _, top *InternalSpacePoint) float64 {
	weight := 0.0
	if bottom.R > c.RegionRadius {
		weight = c.BottomBonus
	}
	if top.R < c.RegionRadius {
		weight = c.TopBonus
	}
	return weight
}

// SingleSeedCut implements ExperimentCuts.
func (c RegionWeightCuts) SingleSeedCut(weight float64, bottom, _, _ *InternalSpacePoint) bool {
	return !(bottom.R > c.RegionRadius && weight < c.MinOuterWeight)
}

// CutPerMiddleSP implements ExperimentCuts.
func (c RegionWeightCuts) CutPerMiddleSP(candidates []Candidate) []Candidate {
	return candidates
}

var _ ExperimentCuts = RegionWeightCuts{}
