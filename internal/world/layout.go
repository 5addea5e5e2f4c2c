package world

import (
	"math"
	"math/rand"
)

// Tuning holds the difficulty curve of the layout synthesizer.
type Tuning struct {
	BaseOpen         float64 // Floor probability at level 0
	PerLevelOpen     float64 // Added floor probability per level
	OpenCap          float64 // Upper bound of the floor probability
	BasePaths        int     // Plus-shapes carved at level 0
	PathLevelDivisor int     // One extra plus-shape every this many levels
}

// DefaultTuning returns the stock difficulty curve.
func DefaultTuning() Tuning {
	return Tuning{
		BaseOpen:         0.65,
		PerLevelOpen:     0.03,
		OpenCap:          0.85,
		BasePaths:        2,
		PathLevelDivisor: 3,
	}
}

// OpenChance is the probability an interior cell is carved to floor.
func (t Tuning) OpenChance(level int) float64 {
	return math.Min(t.BaseOpen+float64(level)*t.PerLevelOpen, t.OpenCap)
}

// PathCount is the number of plus-shapes carved on top of the random fill.
func (t Tuning) PathCount(level int) int {
	if t.PathLevelDivisor <= 0 {
		return t.BasePaths
	}
	return t.BasePaths + level/t.PathLevelDivisor
}

// Synthesize builds a raw layout for the given level. The border is always
// wall; connectivity is only biased here and must be checked by the caller.
func Synthesize(rng *rand.Rand, size, level int, tuning Tuning) *Grid {
	g := NewGrid(size)

	openChance := tuning.OpenChance(level)
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			if rng.Float64() < openChance {
				g.Tiles[y][x] = TileFloor
			}
		}
	}

	interior := size - 2
	if interior <= 0 {
		return g
	}
	for i := tuning.PathCount(level); i > 0; i-- {
		center := Point{X: 1 + rng.Intn(interior), Y: 1 + rng.Intn(interior)}
		g.carvePlus(center)
	}

	return g
}

// carvePlus sets center and its interior neighbors to floor.
func (g *Grid) carvePlus(center Point) {
	g.carve(center)
	for _, n := range g.Neighbors(center) {
		g.carve(n)
	}
}

// carve sets an interior tile to floor, leaving the border untouched.
func (g *Grid) carve(p Point) {
	if g.IsInterior(p) {
		g.Tiles[p.Y][p.X] = TileFloor
	}
}
