package level

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

// ValidateSet checks a level set against its own metadata: level ordering,
// grid shape, wall border, stamped tiles, reward ranges, disjoint points
// and reachability from the start. Every violation is reported.
func ValidateSet(set *Set) error {
	if set == nil {
		return errors.New("nil level set")
	}

	var err error
	md := set.Metadata
	if md.GridSize < 3 {
		return fmt.Errorf("metadata: grid size %d: must be at least 3", md.GridSize)
	}
	if md.TotalLevels != len(set.Levels) {
		err = multierr.Append(err, fmt.Errorf("metadata: total levels %d, found %d", md.TotalLevels, len(set.Levels)))
	}
	for name, code := range world.Legend() {
		if got, ok := md.CellTypes[name]; !ok || got != code {
			err = multierr.Append(err, fmt.Errorf("metadata: cell type %q = %d, want %d", name, got, code))
		}
	}

	for i := range set.Levels {
		l := &set.Levels[i]
		if l.Level != i+1 {
			err = multierr.Append(err, fmt.Errorf("levels[%d]: index %d, want %d", i, l.Level, i+1))
		}
		if lerr := ValidateLevel(l, md); lerr != nil {
			err = multierr.Append(err, fmt.Errorf("level %d: %w", l.Level, lerr))
		}
	}
	return err
}

// ValidateLevel checks one level descriptor against the set metadata.
func ValidateLevel(l *Level, md Metadata) error {
	g, err := l.Tiles(md.GridSize)
	if err != nil {
		return err
	}

	var errs error
	addf := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			p := world.Point{X: x, Y: y}
			if g.IsBorder(p) && g.At(p) != world.TileWall {
				addf("border cell %v is %s", p, g.At(p))
			}
		}
	}

	if l.TreasureCount != len(l.Treasures) {
		addf("treasure count %d, listed %d", l.TreasureCount, len(l.Treasures))
	}
	if l.ChestCount != len(l.Chests) {
		addf("chest count %d, listed %d", l.ChestCount, len(l.Chests))
	}
	if n := g.Count(world.TilePlayerStart); n != 1 {
		addf("%d player start tiles, want 1", n)
	}
	if n := g.Count(world.TilePortal); n != 1 {
		addf("%d portal tiles, want 1", n)
	}
	if n := g.Count(world.TileTreasure); n != len(l.Treasures) {
		addf("%d treasure tiles, listed %d", n, len(l.Treasures))
	}
	if n := g.Count(world.TileChest); n != len(l.Chests) {
		addf("%d chest tiles, listed %d", n, len(l.Chests))
	}

	seen := make(map[world.Point]string)
	var order []world.Point
	claim := func(p world.Point, what string, want world.Tile) {
		if other, dup := seen[p]; dup {
			addf("%s at %v overlaps %s", what, p, other)
		} else {
			order = append(order, p)
		}
		seen[p] = what
		if got := g.At(p); got != want {
			addf("%s at %v is stamped %s", what, p, got)
		}
	}

	start := l.PlayerStart.Point()
	claim(start, "player start", world.TilePlayerStart)
	claim(l.Portal.Point(), "portal", world.TilePortal)
	for _, t := range l.Treasures {
		claim(t.Point(), "treasure", world.TileTreasure)
		if t.Score != md.Rewards.TreasureDiamonds {
			addf("treasure at %v scores %d, want %d", t.Point(), t.Score, md.Rewards.TreasureDiamonds)
		}
	}
	chestRange := md.Rewards.ChestDiamondsRange
	for _, c := range l.Chests {
		claim(c.Point(), "chest", world.TileChest)
		if c.Score < chestRange.Min || c.Score > chestRange.Max {
			addf("chest at %v scores %d, outside [%d, %d]", c.Point(), c.Score, chestRange.Min, chestRange.Max)
		}
	}

	reach := world.Reachable(g, start)
	for _, p := range order {
		if p != start && !reach.Contains(p) {
			addf("%s at %v: %v", seen[p], p, ErrUnreachable)
		}
	}

	return errs
}
