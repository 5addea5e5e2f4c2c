package world

// Region is a rectangular area of the grid.
type Region struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the region
}

// Contains returns true if the given point is inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Empty returns true if the region covers no cells.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Points returns the region's cells in row-major order.
func (r Region) Points() []Point {
	if r.Empty() {
		return nil
	}
	out := make([]Point, 0, r.Width*r.Height)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// StartRegion is the top-left area scanned for the player start:
// rows and columns 1 through min(4, size-1)-1.
func StartRegion(size int) Region {
	end := min(4, size-1)
	return Region{X: 1, Y: 1, Width: end - 1, Height: end - 1}
}

// PortalRegion is the bottom-right area scanned for the portal:
// rows and columns max(size-4, 1) through size-2.
func PortalRegion(size int) Region {
	start := max(size-4, 1)
	return Region{X: start, Y: start, Width: size - 1 - start, Height: size - 1 - start}
}
