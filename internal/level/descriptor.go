package level

import (
	"time"

	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

// Coord is a grid coordinate as written to the artifact.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point converts c to a world point.
func (c Coord) Point() world.Point {
	return world.Point{X: c.X, Y: c.Y}
}

// Item is a scored treasure or chest.
type Item struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Score int `json:"score"`
}

// Point converts the item position to a world point.
func (i Item) Point() world.Point {
	return world.Point{X: i.X, Y: i.Y}
}

// Level is the validated, serializable description of one playable level.
type Level struct {
	Level         int    `json:"level"` // 1-based index
	Grid          []int  `json:"grid"`  // Row-major tile codes
	PlayerStart   Coord  `json:"playerStart"`
	Portal        Coord  `json:"portal"`
	Treasures     []Item `json:"treasures"`
	TreasureCount int    `json:"treasureCount"`
	Chests        []Item `json:"chests"`
	ChestCount    int    `json:"chestCount"`
}

// newLevel bakes a stamped grid and its placement into a descriptor.
func newLevel(index int, g *world.Grid, p *world.Placement) *Level {
	l := &Level{
		Level:         index,
		Grid:          g.Flatten(),
		PlayerStart:   Coord{X: p.Start.X, Y: p.Start.Y},
		Portal:        Coord{X: p.Portal.X, Y: p.Portal.Y},
		Treasures:     make([]Item, 0, len(p.Treasures)),
		TreasureCount: len(p.Treasures),
		Chests:        make([]Item, 0, len(p.Chests)),
		ChestCount:    len(p.Chests),
	}
	for _, t := range p.Treasures {
		l.Treasures = append(l.Treasures, Item{X: t.X, Y: t.Y, Score: t.Score})
	}
	for _, c := range p.Chests {
		l.Chests = append(l.Chests, Item{X: c.X, Y: c.Y, Score: c.Score})
	}
	return l
}

// Tiles rebuilds the level's grid.
func (l *Level) Tiles(size int) (*world.Grid, error) {
	return world.GridFromFlat(size, l.Grid)
}

// Range is a closed integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Rewards describes the diamond payout of treasures and chests.
type Rewards struct {
	TreasureDiamonds   int   `json:"treasureDiamonds"`
	ChestDiamondsRange Range `json:"chestDiamondsRange"`
}

// Metadata describes how a level set was produced.
type Metadata struct {
	GridSize    int            `json:"gridSize"`
	TotalLevels int            `json:"totalLevels"`
	CellTypes   map[string]int `json:"cellTypes"`
	Rewards     Rewards        `json:"rewards"`
	Generated   time.Time      `json:"generated"`
	Seed        int64          `json:"seed"`
	RunID       string         `json:"runId"`
}

// Set is the generator's output artifact.
type Set struct {
	Metadata Metadata `json:"metadata"`
	Levels   []Level  `json:"levels"`
}
