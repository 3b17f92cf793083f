package seeding

import "math"

// Seedfinder runs the triplet pipeline for middle-bin groups. The
// finder is immutable after construction; CreateSeedsForGroup owns all
// of its scratch state, so one finder serves parallel group calls.
type Seedfinder struct {
	cfg    Config
	filter *SeedFilter
}

// NewSeedfinder validates and derives cfg and builds a finder.
func NewSeedfinder(cfg Config) (*Seedfinder, error) {
	derived, err := cfg.Derive()
	if err != nil {
		return nil, err
	}
	return &Seedfinder{
		cfg:    derived,
		filter: NewSeedFilter(derived.Filter, derived.Cuts),
	}, nil
}

// Config returns the derived configuration the finder runs with.
func (f *Seedfinder) Config() Config { return f.cfg }

// groupState is the per-call scratch storage. Buffers are reused
// across the middles of one group to keep allocation off the hot
// path, and never outlive the call.
type groupState struct {
	bottoms []*InternalSpacePoint
	tops    []*InternalSpacePoint
	linB    []LinCircle
	linT    []LinCircle

	topSp      []*InternalSpacePoint
	curvatures []float64
	impacts    []float64

	candidates []Candidate
}

// CreateSeedsForGroup runs the full duplet, triplet and filter
// pipeline for every middle point of one bin group and returns the
// surviving seeds in deterministic order.
func (f *Seedfinder) CreateSeedsForGroup(bottomBins [][]*InternalSpacePoint, middleBin []*InternalSpacePoint, topBins [][]*InternalSpacePoint) []Seed {
	var st groupState
	var out []Seed
	cfg := &f.cfg

	for _, m := range middleBin {
		st.bottoms = searchDuplets(bottomDuplet, bottomBins, m, cfg, st.bottoms[:0])
		if len(st.bottoms) == 0 {
			continue
		}
		st.tops = searchDuplets(topDuplet, topBins, m, cfg, st.tops[:0])
		if len(st.tops) == 0 {
			continue
		}
		st.linB = transformCoordinates(st.bottoms, m, bottomDuplet, st.linB[:0])
		st.linT = transformCoordinates(st.tops, m, topDuplet, st.linT[:0])

		st.candidates = st.candidates[:0]
		f.searchTriplets(m, &st)
		if len(st.candidates) > 0 {
			out = f.filter.filter1SpFixed(st.candidates, out)
		}
	}
	return out
}

// searchTriplets combines every bottom duplet with every top duplet of
// the middle point, applying the scattering, helix-diameter and impact
// cuts, and feeds each bottom's survivors through the first filter
// stage.
func (f *Seedfinder) searchTriplets(m *InternalSpacePoint, st *groupState) {
	cfg := &f.cfg
	varianceRM := m.VarianceR
	varianceZM := m.VarianceZ
	sigma2 := cfg.SigmaScattering * cfg.SigmaScattering

	for ib, b := range st.bottoms {
		lb := st.linB[ib]
		cotThetaB := lb.CotTheta

		// Scattering budget for a track at the configured minimum
		// pT, at this duplet's polar angle.
		iSinTheta2 := 1 + cotThetaB*cotThetaB
		scatteringInRegion2 := cfg.MaxScatteringAngle2 * iSinTheta2 * sigma2

		st.topSp = st.topSp[:0]
		st.curvatures = st.curvatures[:0]
		st.impacts = st.impacts[:0]

		for it, t := range st.tops {
			lt := st.linT[it]

			// Combined duplet variance, correlated through the
			// shared middle point.
			error2 := lt.Er + lb.Er +
				2*(cotThetaB*lt.CotTheta*varianceRM+varianceZM)*lb.IDeltaR*lt.IDeltaR

			deltaCotTheta := cotThetaB - lt.CotTheta
			deltaCotTheta2 := deltaCotTheta * deltaCotTheta
			// Residual once the measurement uncertainty is spent.
			residual2 := deltaCotTheta2 + error2 -
				2*math.Abs(deltaCotTheta)*math.Sqrt(error2)

			if deltaCotTheta2-error2 > 0 && residual2 > scatteringInRegion2 {
				continue
			}

			dU := lt.U - lb.U
			if dU == 0 {
				continue
			}
			// Line fit in conformal space: v = A*u + B. The
			// fitted circle's squared diameter is S2/B2.
			A := (lt.V - lb.V) / dU
			S2 := 1 + A*A
			B := lb.V - A*lb.U
			B2 := B * B
			if S2 < B2*cfg.MinHelixDiameter2 {
				continue
			}

			// Re-apply the scattering cut with the fitted pT
			// instead of the global minimum.
			iHelixDiameter2 := B2 / S2
			pT2scatter := 4 * iHelixDiameter2 * cfg.PT2PerRadius
			p2scatter := pT2scatter * iSinTheta2
			if deltaCotTheta2-error2 > 0 && residual2 > p2scatter*sigma2 {
				continue
			}

			im := math.Abs((A - B*m.R) * m.R)
			if im > cfg.ImpactMax {
				continue
			}

			st.topSp = append(st.topSp, t)
			st.curvatures = append(st.curvatures, B/math.Sqrt(S2))
			st.impacts = append(st.impacts, im)
		}

		if len(st.topSp) > 0 {
			st.candidates = f.filter.filter2SpFixed(b, m,
				st.topSp, st.curvatures, st.impacts, lb.Zo, st.candidates)
		}
	}
}
