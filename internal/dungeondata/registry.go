package dungeondata

import (
	"errors"
	"fmt"

	"github.com/huaigu/monad-dungeon-quest/internal/level"
	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

// LevelRegistry holds a loaded level set and provides lookup utilities.
type LevelRegistry struct {
	metadata level.Metadata
	levels   map[int]*level.Level
	all      []level.Level
}

// NewLevelRegistry creates a registry from a loaded level set.
func NewLevelRegistry(set *level.Set) *LevelRegistry {
	registry := &LevelRegistry{
		metadata: set.Metadata,
		levels:   make(map[int]*level.Level, len(set.Levels)),
		all:      set.Levels,
	}
	for i := range set.Levels {
		registry.levels[set.Levels[i].Level] = &set.Levels[i]
	}
	return registry
}

// Metadata returns the set metadata.
func (r *LevelRegistry) Metadata() level.Metadata {
	return r.metadata
}

// GetByLevel returns the level with the given 1-based index, or nil if not found.
func (r *LevelRegistry) GetByLevel(index int) *level.Level {
	return r.levels[index]
}

// All returns all levels in order.
func (r *LevelRegistry) All() []level.Level {
	return r.all
}

// Count returns the number of levels in the registry.
func (r *LevelRegistry) Count() int {
	return len(r.all)
}

// Cells returns the 2D cell view of a level for rendering.
func (r *LevelRegistry) Cells(index int) ([][]Cell, error) {
	l := r.GetByLevel(index)
	if l == nil {
		return nil, fmt.Errorf("level %d: %w", index, ErrLevelNotFound)
	}
	return ToCells(l, r.metadata.GridSize)
}

// ErrLevelNotFound is returned for an index missing from the set.
var ErrLevelNotFound = errors.New("level not found")

// Cell is one tile of a level as seen by a renderer. The player start is
// shown as floor with HasPlayer set.
type Cell struct {
	Type      world.Tile
	X, Y      int
	HasPlayer bool
}

// ToCells converts a level's flat grid into rows of cells.
func ToCells(l *level.Level, size int) ([][]Cell, error) {
	if len(l.Grid) != size*size {
		return nil, fmt.Errorf("level %d: grid has %d cells, want %d", l.Level, len(l.Grid), size*size)
	}

	rows := make([][]Cell, size)
	for y := range rows {
		rows[y] = make([]Cell, size)
		for x := range rows[y] {
			t := world.Tile(l.Grid[y*size+x])
			switch {
			case t == world.TilePlayerStart:
				t = world.TileFloor
			case !t.Valid():
				t = world.TileWall
			}
			rows[y][x] = Cell{
				Type:      t,
				X:         x,
				Y:         y,
				HasPlayer: x == l.PlayerStart.X && y == l.PlayerStart.Y,
			}
		}
	}
	return rows, nil
}

// Diamonds is the maximum diamond haul of a level.
type Diamonds struct {
	Treasure int
	Chest    int
	Total    int
}

// LevelDiamonds totals the treasure and chest rewards of l.
func LevelDiamonds(l *level.Level) Diamonds {
	var d Diamonds
	for _, t := range l.Treasures {
		d.Treasure += t.Score
	}
	for _, c := range l.Chests {
		d.Chest += c.Score
	}
	d.Total = d.Treasure + d.Chest
	return d
}
