package world

import "fmt"

// DefaultSize is the side length of a level grid.
const DefaultSize = 10

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// neighborOffsets is the canonical neighbor order.
var neighborOffsets = [4]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is a square tile matrix indexed as Tiles[y][x].
type Grid struct {
	Size  int
	Tiles [][]Tile
}

// NewGrid creates a size x size grid filled with walls.
func NewGrid(size int) *Grid {
	tiles := make([][]Tile, size)
	for y := range tiles {
		tiles[y] = make([]Tile, size)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Grid{
		Size:  size,
		Tiles: tiles,
	}
}

// GridFromFlat rebuilds a grid from a row-major code array.
func GridFromFlat(size int, codes []int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid grid size %d", size)
	}
	if len(codes) != size*size {
		return nil, fmt.Errorf("grid has %d cells, want %d", len(codes), size*size)
	}

	g := NewGrid(size)
	for i, code := range codes {
		t := Tile(code)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown tile code %d at index %d", code, i)
		}
		g.Tiles[i/size][i%size] = t
	}
	return g, nil
}

// InBounds returns true if p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// IsBorder returns true if p is on the outer ring of the grid.
func (g *Grid) IsBorder(p Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == g.Size-1 || p.Y == g.Size-1
}

// IsInterior returns true if p is inside the grid and off the border.
func (g *Grid) IsInterior(p Point) bool {
	return g.InBounds(p) && !g.IsBorder(p)
}

// At returns the tile at p. Out of bounds reads as wall.
func (g *Grid) At(p Point) Tile {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.Tiles[p.Y][p.X]
}

// Set writes t at p. Out of bounds writes are ignored.
func (g *Grid) Set(p Point, t Tile) {
	if g.InBounds(p) {
		g.Tiles[p.Y][p.X] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(p Point) bool {
	return g.At(p).IsPassable()
}

// Neighbors returns the in-bounds axis-aligned neighbors of p.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		if n := p.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{Size: g.Size, Tiles: make([][]Tile, g.Size)}
	for y := range g.Tiles {
		c.Tiles[y] = append([]Tile(nil), g.Tiles[y]...)
	}
	return c
}

// Flatten returns the tile codes in row-major order.
func (g *Grid) Flatten() []int {
	flat := make([]int, 0, g.Size*g.Size)
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			flat = append(flat, g.Tiles[y][x].Code())
		}
	}
	return flat
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.Tiles {
		for _, cell := range g.Tiles[y] {
			if cell == t {
				n++
			}
		}
	}
	return n
}
