package seeding

import (
	"math"
	"testing"
)

func TestBinnedGroupsOrdering(t *testing.T) {
	// One point per occupied cell: two z slices, two azimuths each.
	points := []SpacePoint{
		NewSpacePoint(50*math.Cos(2.0), 50*math.Sin(2.0), 2000, 3, 0.1, 0.1),
		NewSpacePoint(50, 0, -2000, 0, 0.1, 0.1),
		NewSpacePoint(50*math.Cos(2.0), 50*math.Sin(2.0), -2000, 1, 0.1, 0.1),
		NewSpacePoint(50, 0, 2000, 2, 0.1, 0.1),
	}
	g, err := BuildGrid(points, testGridConfig())
	if err != nil {
		t.Fatal(err)
	}

	it := NewBinnedGroups(g, NewBinFinder(), NewBinFinder())
	var layers []int
	for it.Next() {
		middle := it.Middle()
		if len(middle) != 1 {
			t.Fatalf("expected singleton middle bins, got %d points", len(middle))
		}
		layers = append(layers, middle[0].Source.Layer)
	}

	// Ascending z bin, then ascending phi bin.
	want := []int{0, 1, 2, 3}
	if len(layers) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(layers))
	}
	for i := range want {
		if layers[i] != want[i] {
			t.Errorf("group %d has middle layer %d, want %d", i, layers[i], want[i])
		}
	}

	// Exhausted iterators stay exhausted.
	if it.Next() {
		t.Error("iterator restarted after exhaustion")
	}
}

func TestBinnedGroupsSkipsEmptyMiddles(t *testing.T) {
	points := []SpacePoint{NewSpacePoint(50, 0, 0, 1, 0.1, 0.1)}
	g, err := BuildGrid(points, testGridConfig())
	if err != nil {
		t.Fatal(err)
	}

	it := NewBinnedGroups(g, NewBinFinder(), NewBinFinder())
	n := 0
	for it.Next() {
		n++
		if len(it.Middle()) == 0 {
			t.Error("yielded an empty middle bin")
		}
	}
	if n != 1 {
		t.Errorf("expected exactly 1 group, got %d", n)
	}
}

func TestBinnedGroupsNeighbourhoodContents(t *testing.T) {
	// Middle cell flanked in z by neighbours; all same phi.
	points := []SpacePoint{
		NewSpacePoint(30, 0, -1500, 0, 0.1, 0.1),
		NewSpacePoint(50, 0, 0, 1, 0.1, 0.1),
		NewSpacePoint(120, 0, 1500, 2, 0.1, 0.1),
	}
	g, err := BuildGrid(points, testGridConfig())
	if err != nil {
		t.Fatal(err)
	}

	it := NewBinnedGroups(g, NewBinFinder(), NewBinFinder())
	seen := 0
	for it.Next() {
		seen++
		if len(it.Middle()) == 0 {
			t.Fatal("empty middle")
		}
		if it.Middle()[0].Source.Layer != 1 {
			continue
		}
		// The centre group must see all three occupied cells on
		// both sides.
		countPoints := func(bins [][]*InternalSpacePoint) int {
			n := 0
			for _, b := range bins {
				n += len(b)
			}
			return n
		}
		if got := countPoints(it.Bottom()); got != 3 {
			t.Errorf("bottom neighbourhood has %d points, want 3", got)
		}
		if got := countPoints(it.Top()); got != 3 {
			t.Errorf("top neighbourhood has %d points, want 3", got)
		}
	}
	if seen != 3 {
		t.Errorf("expected 3 groups, got %d", seen)
	}
}

func TestCollectGroupsPreservesOrder(t *testing.T) {
	points := seedTrackPoints()
	g, err := BuildGrid(points, testGridConfig())
	if err != nil {
		t.Fatal(err)
	}
	groups := CollectGroups(NewBinnedGroups(g, NewBinFinder(), NewBinFinder()))

	var direct []int
	it := NewBinnedGroups(g, NewBinFinder(), NewBinFinder())
	for it.Next() {
		direct = append(direct, it.Middle()[0].Source.Layer)
	}
	if len(groups) != len(direct) {
		t.Fatalf("collected %d groups, iterated %d", len(groups), len(direct))
	}
	for i, grp := range groups {
		if grp.Middle[0].Source.Layer != direct[i] {
			t.Errorf("group %d middle mismatch", i)
		}
	}
}
