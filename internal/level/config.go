package level

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

// Config holds level-set generation options.
type Config struct {
	// Seed for random number generation. Used for reproducible level sets.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	GridSize    int
	TotalLevels int

	// MaxAttempts bounds the synthesize/place/validate loop of each level.
	MaxAttempts int

	// Workers > 1 generates levels concurrently. Output does not depend on it.
	Workers int

	Rules  world.PlacementRules
	Tuning world.Tuning
}

// DefaultConfig returns the stock level-set configuration.
func DefaultConfig() Config {
	return Config{
		GridSize:    world.DefaultSize,
		TotalLevels: 10,
		MaxAttempts: 100,
		Workers:     1,
		Rules: world.PlacementRules{
			MinTreasures:   2,
			MaxTreasures:   3,
			MinChests:      1,
			MaxChests:      2,
			TreasureReward: 1,
			MinChestReward: 0,
			MaxChestReward: 10,
		},
		Tuning: world.DefaultTuning(),
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var err error
	if c.GridSize < 3 {
		err = multierr.Append(err, fmt.Errorf("grid size %d: must be at least 3", c.GridSize))
	}
	if c.TotalLevels < 1 {
		err = multierr.Append(err, fmt.Errorf("total levels %d: must be at least 1", c.TotalLevels))
	}
	if c.MaxAttempts < 1 {
		err = multierr.Append(err, fmt.Errorf("max attempts %d: must be at least 1", c.MaxAttempts))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("workers %d: must not be negative", c.Workers))
	}

	r := c.Rules
	err = multierr.Append(err, checkRange("treasure count", r.MinTreasures, r.MaxTreasures))
	err = multierr.Append(err, checkRange("chest count", r.MinChests, r.MaxChests))
	err = multierr.Append(err, checkRange("chest reward", r.MinChestReward, r.MaxChestReward))
	if r.TreasureReward < 0 {
		err = multierr.Append(err, fmt.Errorf("treasure reward %d: must not be negative", r.TreasureReward))
	}

	t := c.Tuning
	if t.BaseOpen < 0 || t.OpenCap > 1 || t.OpenCap < t.BaseOpen {
		err = multierr.Append(err, fmt.Errorf("open chance %.2f..%.2f: must satisfy 0 <= base <= cap <= 1", t.BaseOpen, t.OpenCap))
	}
	if t.PerLevelOpen < 0 {
		err = multierr.Append(err, fmt.Errorf("per-level open %.2f: must not be negative", t.PerLevelOpen))
	}
	if t.BasePaths < 0 {
		err = multierr.Append(err, fmt.Errorf("base paths %d: must not be negative", t.BasePaths))
	}
	return err
}

func checkRange(name string, lo, hi int) error {
	if lo < 0 || hi < lo {
		return fmt.Errorf("%s range [%d, %d]: must satisfy 0 <= min <= max", name, lo, hi)
	}
	return nil
}

// levelSeed derives an independent RNG seed for one level, so levels can
// be generated in any order or concurrently with identical results.
func levelSeed(seed int64, index int) int64 {
	z := uint64(seed) + uint64(index)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
