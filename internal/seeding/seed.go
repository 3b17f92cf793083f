package seeding

// Seed is an ordered triplet (bottom, middle, top) of space points
// consistent with a helical track, plus the filter's final weight and
// the z origin estimated from the bottom duplet.
type Seed struct {
	Bottom *SpacePoint
	Middle *SpacePoint
	Top    *SpacePoint

	Weight float64
	Z      float64
}

// Candidate is a scored triplet under consideration by the seed
// filter. Candidates exist only while one middle point is being
// processed; survivors are converted to Seeds.
type Candidate struct {
	Bottom *InternalSpacePoint
	Middle *InternalSpacePoint
	Top    *InternalSpacePoint

	// Z is the origin on the beam axis from the bottom duplet.
	Z      float64
	Weight float64
}
