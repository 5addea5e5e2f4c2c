package world

import "github.com/zyedidia/generic/mapset"

// IsReachable reports whether target can be reached from start by walking
// through non-wall tiles. An endpoint that is a wall is never reachable, not
// even from itself.
func IsReachable(g *Grid, start, target Point) bool {
	if !g.IsPassable(start) || !g.IsPassable(target) {
		return false
	}

	visited := mapset.New[Point]()
	visited.Put(start)
	queue := []Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			return true
		}

		for _, n := range g.Neighbors(current) {
			if !visited.Has(n) && g.IsPassable(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	return false
}

// Reach is the set of cells connected to an origin through passable tiles.
type Reach struct {
	origin  Point
	visited mapset.Set[Point]
}

// Reachable runs a single BFS from start and returns every cell it reaches.
// Testing several targets against the result is equivalent to calling
// IsReachable once per target.
func Reachable(g *Grid, start Point) Reach {
	r := Reach{origin: start, visited: mapset.New[Point]()}
	if !g.IsPassable(start) {
		return r
	}

	r.visited.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range g.Neighbors(current) {
			if !r.visited.Has(n) && g.IsPassable(n) {
				r.visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return r
}

// Origin returns the BFS start.
func (r Reach) Origin() Point {
	return r.origin
}

// Contains reports whether p was reached.
func (r Reach) Contains(p Point) bool {
	return r.visited.Has(p)
}

// Size returns the number of reached cells.
func (r Reach) Size() int {
	return r.visited.Size()
}
