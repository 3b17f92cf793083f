package seeding

// Group is a snapshot of one middle bin together with its bottom and
// top neighbourhood bins. The point slices alias the grid and must be
// treated as read-only.
type Group struct {
	Bottom [][]*InternalSpacePoint
	Middle []*InternalSpacePoint
	Top    [][]*InternalSpacePoint
}

// BinnedGroups iterates over the non-empty middle bins of a grid,
// yielding for each the bottom-neighbour and top-neighbour bin
// contents. The sequence is lazy, finite, and non-restartable.
//
// Middles are emitted in ascending z bin, then ascending phi bin; this
// ordering is the sole source of global determinism.
type BinnedGroups struct {
	grid         *Grid
	bottomFinder BinFinder
	topFinder    BinFinder

	order []BinCoord
	pos   int

	cur Group
}

// NewBinnedGroups builds the group iterator over grid using the two
// neighbourhood policies.
func NewBinnedGroups(grid *Grid, bottomFinder, topFinder BinFinder) *BinnedGroups {
	order := make([]BinCoord, 0, grid.PhiBins()*grid.ZBins())
	for iz := 0; iz < grid.ZBins(); iz++ {
		for ip := 0; ip < grid.PhiBins(); ip++ {
			c := BinCoord{Phi: ip, Z: iz}
			if len(grid.Bin(c)) > 0 {
				order = append(order, c)
			}
		}
	}
	return &BinnedGroups{
		grid:         grid,
		bottomFinder: bottomFinder,
		topFinder:    topFinder,
		order:        order,
		pos:          -1,
	}
}

// Next advances to the next middle bin, returning false when the
// sequence is exhausted. The accessors are valid until the following
// call to Next.
func (it *BinnedGroups) Next() bool {
	it.pos++
	if it.pos >= len(it.order) {
		it.cur = Group{}
		return false
	}
	centre := it.order[it.pos]
	it.cur = Group{
		Bottom: it.collect(it.bottomFinder, centre),
		Middle: it.grid.Bin(centre),
		Top:    it.collect(it.topFinder, centre),
	}
	return true
}

func (it *BinnedGroups) collect(f BinFinder, centre BinCoord) [][]*InternalSpacePoint {
	coords := f.FindBins(it.grid, centre)
	bins := make([][]*InternalSpacePoint, 0, len(coords))
	for _, c := range coords {
		if b := it.grid.Bin(c); len(b) > 0 {
			bins = append(bins, b)
		}
	}
	return bins
}

// Bottom returns the bottom-neighbourhood bins of the current middle.
func (it *BinnedGroups) Bottom() [][]*InternalSpacePoint { return it.cur.Bottom }

// Middle returns the current middle bin.
func (it *BinnedGroups) Middle() []*InternalSpacePoint { return it.cur.Middle }

// Top returns the top-neighbourhood bins of the current middle.
func (it *BinnedGroups) Top() [][]*InternalSpacePoint { return it.cur.Top }

// Current returns the current group snapshot. The snapshot remains
// valid after the iterator advances, so it can be handed to a worker.
func (it *BinnedGroups) Current() Group { return it.cur }

// CollectGroups drains the iterator into a slice of snapshots, in
// emission order. Useful for fanning groups out over workers.
func CollectGroups(it *BinnedGroups) []Group {
	var groups []Group
	for it.Next() {
		groups = append(groups, it.Current())
	}
	return groups
}
