package level

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

func generatedSet(t *testing.T) *Set {
	t.Helper()
	set, err := newTestGenerator(t, seededConfig(2468)).GenerateSet(context.Background())
	if err != nil {
		t.Fatalf("GenerateSet() error: %v", err)
	}
	return set
}

func TestValidateSetAcceptsGenerated(t *testing.T) {
	if err := ValidateSet(generatedSet(t)); err != nil {
		t.Errorf("ValidateSet() error: %v", err)
	}
}

func TestValidateSetRejectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(*Set)
		want   string
	}{
		{
			name:   "open border",
			tamper: func(s *Set) { s.Levels[0].Grid[0] = world.TileFloor.Code() },
			want:   "border cell",
		},
		{
			name: "chest score out of range",
			tamper: func(s *Set) {
				s.Levels[1].Chests[0].Score = 11
			},
			want: "outside [0, 10]",
		},
		{
			name:   "count mismatch",
			tamper: func(s *Set) { s.Levels[2].TreasureCount++ },
			want:   "treasure count",
		},
		{
			name: "portal overlaps start",
			tamper: func(s *Set) {
				s.Levels[3].Portal = s.Levels[3].PlayerStart
			},
			want: "overlaps",
		},
		{
			name:   "short grid",
			tamper: func(s *Set) { s.Levels[4].Grid = s.Levels[4].Grid[:50] },
			want:   "grid has 50 cells",
		},
		{
			name:   "level out of order",
			tamper: func(s *Set) { s.Levels[5].Level = 42 },
			want:   "index 42",
		},
		{
			name:   "missing level",
			tamper: func(s *Set) { s.Levels = s.Levels[:9] },
			want:   "total levels 10, found 9",
		},
	}

	for _, tt := range tests {
		set := generatedSet(t)
		tt.tamper(set)
		err := ValidateSet(set)
		if err == nil {
			t.Errorf("%s: ValidateSet() should fail", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: ValidateSet() error = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestValidateLevelDetectsUnreachable(t *testing.T) {
	set := generatedSet(t)
	l := &set.Levels[0]

	// Wall in the portal, then re-stamp it somewhere enclosed
	size := set.Metadata.GridSize
	grid, err := l.Tiles(size)
	if err != nil {
		t.Fatalf("Tiles() error: %v", err)
	}
	for _, n := range grid.Neighbors(l.Portal.Point()) {
		switch grid.At(n) {
		case world.TileFloor:
			grid.Set(n, world.TileWall)
		case world.TilePlayerStart, world.TileTreasure, world.TileChest:
			t.Skip("portal is adjacent to another point of interest")
		}
	}
	l.Grid = grid.Flatten()

	err = ValidateLevel(l, set.Metadata)
	if err == nil || !strings.Contains(err.Error(), ErrUnreachable.Error()) {
		t.Errorf("ValidateLevel() error = %v, want unreachable portal", err)
	}
}

func TestValidateSetNil(t *testing.T) {
	if err := ValidateSet(nil); err == nil {
		t.Error("ValidateSet(nil) should fail")
	}
	if err := ValidateSet(&Set{}); err == nil || errors.Is(err, ErrUnreachable) {
		t.Errorf("empty set error = %v, want metadata error", err)
	}
}
