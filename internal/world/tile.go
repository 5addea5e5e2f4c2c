// Package world provides the tile grid and the generation primitives that
// operate on it: layout synthesis, point-of-interest placement and
// reachability.
package world

// Tile represents a single map tile. The numeric value is the code written
// to the level artifact.
type Tile int

const (
	// TileFloor represents a passable floor tile.
	TileFloor Tile = iota
	// TileWall represents an impassable wall tile.
	TileWall
	// TileTreasure holds a fixed one-diamond treasure.
	TileTreasure
	// TilePortal is the level exit.
	TilePortal
	// TilePlayerStart marks where the player spawns.
	TilePlayerStart
	// TileChest holds a chest with a random diamond reward.
	TileChest
)

// Tiles lists every tile type in code order.
var Tiles = []Tile{TileFloor, TileWall, TileTreasure, TilePortal, TilePlayerStart, TileChest}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t != TileWall
}

// Valid reports whether t is one of the known tile codes.
func (t Tile) Valid() bool {
	return t >= TileFloor && t <= TileChest
}

// Code returns the artifact code of the tile.
func (t Tile) Code() int {
	return int(t)
}

// String returns the tile's legend name.
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileTreasure:
		return "treasure"
	case TilePortal:
		return "portal"
	case TilePlayerStart:
		return "player"
	case TileChest:
		return "chest"
	default:
		return "unknown"
	}
}

// Legend maps tile names to their artifact codes.
func Legend() map[string]int {
	legend := make(map[string]int, len(Tiles))
	for _, t := range Tiles {
		legend[t.String()] = t.Code()
	}
	return legend
}
