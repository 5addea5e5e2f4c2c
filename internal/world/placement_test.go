package world

import (
	"errors"
	"math/rand"
	"testing"
)

func testRules() PlacementRules {
	return PlacementRules{
		MinTreasures:   2,
		MaxTreasures:   3,
		MinChests:      1,
		MaxChests:      2,
		TreasureReward: 1,
		MinChestReward: 0,
		MaxChestReward: 10,
	}
}

func openGrid(size int) *Grid {
	g := NewGrid(size)
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			g.Tiles[y][x] = TileFloor
		}
	}
	return g
}

func TestPlaceOpenGrid(t *testing.T) {
	g := openGrid(DefaultSize)
	p, err := Place(g, rand.New(rand.NewSource(1)), testRules())
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}

	// First floor in row-major order of each region
	if p.Start != (Point{1, 1}) {
		t.Errorf("Start = %v, want (1,1)", p.Start)
	}
	if p.Portal != (Point{6, 6}) {
		t.Errorf("Portal = %v, want (6,6)", p.Portal)
	}
}

func TestPlaceDisjointAndInRange(t *testing.T) {
	rules := testRules()
	rng := rand.New(rand.NewSource(77))

	for i := 0; i < 200; i++ {
		g := Synthesize(rng, DefaultSize, 1+i%10, DefaultTuning())
		p, err := Place(g, rng, rules)
		if err != nil {
			if !errors.Is(err, ErrPlacementStarvation) {
				t.Fatalf("Place() error = %v, want ErrPlacementStarvation", err)
			}
			continue
		}

		if n := len(p.Treasures); n < rules.MinTreasures || n > rules.MaxTreasures {
			t.Errorf("treasure count %d outside [%d, %d]", n, rules.MinTreasures, rules.MaxTreasures)
		}
		if n := len(p.Chests); n < rules.MinChests || n > rules.MaxChests {
			t.Errorf("chest count %d outside [%d, %d]", n, rules.MinChests, rules.MaxChests)
		}
		for _, tr := range p.Treasures {
			if tr.Score != rules.TreasureReward {
				t.Errorf("treasure score %d, want %d", tr.Score, rules.TreasureReward)
			}
		}
		for _, c := range p.Chests {
			if c.Score < rules.MinChestReward || c.Score > rules.MaxChestReward {
				t.Errorf("chest score %d outside [%d, %d]", c.Score, rules.MinChestReward, rules.MaxChestReward)
			}
		}

		seen := map[Point]bool{p.Start: true}
		for _, pt := range p.Points() {
			if seen[pt] {
				t.Fatalf("point %v placed twice", pt)
			}
			seen[pt] = true
			if g.At(pt) != TileFloor {
				t.Errorf("point %v is on %v, want floor", pt, g.At(pt))
			}
		}
		if !StartRegion(g.Size).Contains(p.Start) {
			t.Errorf("start %v outside start region", p.Start)
		}
		if !PortalRegion(g.Size).Contains(p.Portal) {
			t.Errorf("portal %v outside portal region", p.Portal)
		}
	}
}

func TestPlaceFallbacks(t *testing.T) {
	g := openGrid(DefaultSize)
	// Close both corner regions
	for _, r := range []Region{StartRegion(g.Size), PortalRegion(g.Size)} {
		for _, pt := range r.Points() {
			g.Set(pt, TileWall)
		}
	}

	p, err := Place(g, rand.New(rand.NewSource(5)), testRules())
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	if p.Start != (Point{1, 1}) || g.At(p.Start) != TileFloor {
		t.Errorf("start fallback = %v (%v), want floor at (1,1)", p.Start, g.At(p.Start))
	}
	if p.Portal != (Point{8, 8}) || g.At(p.Portal) != TileFloor {
		t.Errorf("portal fallback = %v (%v), want floor at (8,8)", p.Portal, g.At(p.Portal))
	}
}

func TestPlaceStarvation(t *testing.T) {
	g := openGrid(3)
	_, err := Place(g, rand.New(rand.NewSource(1)), testRules())
	if !errors.Is(err, ErrPlacementStarvation) {
		t.Fatalf("Place() on 3x3 error = %v, want ErrPlacementStarvation", err)
	}

	// Enough room for treasures but not chests
	g = gridFromRows(
		"#####",
		"#...#",
		"#.###",
		"#####",
		"#####",
	)
	rules := testRules()
	rules.MaxTreasures = 2
	_, err = Place(g, rand.New(rand.NewSource(1)), rules)
	if !errors.Is(err, ErrPlacementStarvation) {
		t.Fatalf("Place() without chest room error = %v, want ErrPlacementStarvation", err)
	}
}

func TestPlaceDoesNotStamp(t *testing.T) {
	g := openGrid(DefaultSize)
	before := g.Clone()

	p, err := Place(g, rand.New(rand.NewSource(9)), testRules())
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x] != before.Tiles[y][x] {
				t.Fatalf("Place() changed tile (%d,%d)", x, y)
			}
		}
	}

	p.Stamp(g)
	if g.At(p.Start) != TilePlayerStart || g.At(p.Portal) != TilePortal {
		t.Error("Stamp() should mark start and portal")
	}
	if g.Count(TileTreasure) != len(p.Treasures) || g.Count(TileChest) != len(p.Chests) {
		t.Error("Stamp() should mark every treasure and chest")
	}
}

func TestPlaceDeterministic(t *testing.T) {
	g1 := Synthesize(rand.New(rand.NewSource(11)), DefaultSize, 2, DefaultTuning())
	g2 := g1.Clone()

	p1, err1 := Place(g1, rand.New(rand.NewSource(3)), testRules())
	p2, err2 := Place(g2, rand.New(rand.NewSource(3)), testRules())
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("errors differ: %v vs %v", err1, err2)
	}
	if err1 != nil {
		return
	}
	pts1, pts2 := p1.Points(), p2.Points()
	if len(pts1) != len(pts2) {
		t.Fatalf("placement sizes differ: %d vs %d", len(pts1), len(pts2))
	}
	for i := range pts1 {
		if pts1[i] != pts2[i] {
			t.Errorf("point %d differs: %v vs %v", i, pts1[i], pts2[i])
		}
	}
}
