package world

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// ErrPlacementStarvation is returned when a layout has too few free floor
// cells for the requested points of interest.
var ErrPlacementStarvation = errors.New("placement starvation")

// PlacementRules bounds the number and value of placed rewards.
type PlacementRules struct {
	MinTreasures   int
	MaxTreasures   int
	MinChests      int
	MaxChests      int
	TreasureReward int
	MinChestReward int
	MaxChestReward int
}

// Reward is a scored point of interest.
type Reward struct {
	Point
	Score int
}

// Placement holds the chosen points of interest for one layout.
type Placement struct {
	Start     Point
	Portal    Point
	Treasures []Reward
	Chests    []Reward
}

// Points returns the portal, treasures and chests in validation order.
func (p *Placement) Points() []Point {
	out := make([]Point, 0, 1+len(p.Treasures)+len(p.Chests))
	out = append(out, p.Portal)
	for _, t := range p.Treasures {
		out = append(out, t.Point)
	}
	for _, c := range p.Chests {
		out = append(out, c.Point)
	}
	return out
}

// Stamp writes the placement's tile codes into g.
func (p *Placement) Stamp(g *Grid) {
	g.Set(p.Start, TilePlayerStart)
	g.Set(p.Portal, TilePortal)
	for _, t := range p.Treasures {
		g.Set(t.Point, TileTreasure)
	}
	for _, c := range p.Chests {
		g.Set(c.Point, TileChest)
	}
}

// Place chooses the player start, portal, treasures and chests on g.
// If no floor exists in the start or portal region, the fallback cell is
// forced to floor on g; nothing else is written.
func Place(g *Grid, rng *rand.Rand, rules PlacementRules) (*Placement, error) {
	p := &Placement{}

	start, ok := firstFloor(g, StartRegion(g.Size), nil)
	if !ok {
		start = Point{X: 1, Y: 1}
		g.Set(start, TileFloor)
	}
	p.Start = start

	portal, ok := firstFloor(g, PortalRegion(g.Size), &start)
	if !ok {
		portal = Point{X: g.Size - 2, Y: g.Size - 2}
		if portal == start {
			return nil, fmt.Errorf("%w: portal fallback %v overlaps start", ErrPlacementStarvation, portal)
		}
		g.Set(portal, TileFloor)
	}
	p.Portal = portal

	pool := freeFloor(g, start, portal)

	treasureCount := between(rng, rules.MinTreasures, rules.MaxTreasures)
	if len(pool) < treasureCount {
		return nil, fmt.Errorf("%w: need %d treasures, %d free cells", ErrPlacementStarvation, treasureCount, len(pool))
	}
	p.Treasures = make([]Reward, 0, treasureCount)
	for i := 0; i < treasureCount; i++ {
		var pt Point
		pt, pool = take(rng, pool)
		p.Treasures = append(p.Treasures, Reward{Point: pt, Score: rules.TreasureReward})
	}

	chestCount := between(rng, rules.MinChests, rules.MaxChests)
	if len(pool) < chestCount {
		return nil, fmt.Errorf("%w: need %d chests, %d free cells", ErrPlacementStarvation, chestCount, len(pool))
	}
	p.Chests = make([]Reward, 0, chestCount)
	for i := 0; i < chestCount; i++ {
		var pt Point
		pt, pool = take(rng, pool)
		score := between(rng, rules.MinChestReward, rules.MaxChestReward)
		p.Chests = append(p.Chests, Reward{Point: pt, Score: score})
	}

	return p, nil
}

// firstFloor scans r in row-major order for a floor cell, skipping exclude.
func firstFloor(g *Grid, r Region, exclude *Point) (Point, bool) {
	for _, pt := range r.Points() {
		if exclude != nil && pt == *exclude {
			continue
		}
		if g.At(pt) == TileFloor {
			return pt, true
		}
	}
	return Point{}, false
}

// freeFloor lists floor cells in row-major order, minus start and portal.
func freeFloor(g *Grid, start, portal Point) []Point {
	var pool []Point
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			pt := Point{X: x, Y: y}
			if pt == start || pt == portal {
				continue
			}
			if g.Tiles[y][x] == TileFloor {
				pool = append(pool, pt)
			}
		}
	}
	return pool
}

// take removes and returns a uniformly chosen element of pool.
func take(rng *rand.Rand, pool []Point) (Point, []Point) {
	i := rng.Intn(len(pool))
	pt := pool[i]
	return pt, slices.Delete(pool, i, i+1)
}

// between draws uniformly from the closed range [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
