// Package level assembles validated dungeon levels and the level-set
// artifact built from them.
package level

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/huaigu/monad-dungeon-quest/internal/telemetry"
	"github.com/huaigu/monad-dungeon-quest/internal/world"
)

// Generator produces levels from a Config.
type Generator struct {
	cfg    Config
	seed   int64
	tracer trace.Tracer
	logger *log.Logger
	now    func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithTracer sets the tracer used for generation spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock sets the time source for the metadata timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator. The config is validated up front.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Generator{
		cfg:    cfg,
		seed:   seed,
		tracer: telemetry.Tracer("level"),
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Seed returns the effective seed, resolved if the config asked for a random one.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// GenerateLevel produces the validated level with the given 1-based index.
// The result depends only on the seed and the index.
func (g *Generator) GenerateLevel(ctx context.Context, index int) (*Level, error) {
	ctx, span := g.tracer.Start(ctx, "level.generate",
		trace.WithAttributes(attribute.Int("level.index", index)))
	defer span.End()

	startTime := time.Now()
	rng := rand.New(rand.NewSource(levelSeed(g.seed, index)))

	var (
		result   *Level
		last     error
		attempts int
	)
	backoff := retry.WithMaxRetries(uint64(g.cfg.MaxAttempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		lvl, at, err := g.attempt(rng, index)
		if err != nil {
			last = err
			span.AddEvent("level.retry", trace.WithAttributes(
				attribute.Int("attempt", attempts),
				attribute.String("state", at.String()),
				attribute.String("reason", err.Error()),
			))
			return retry.RetryableError(err)
		}
		result = lvl
		return nil
	})

	span.SetAttributes(
		attribute.Int("level.attempts", attempts),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			span.SetStatus(codes.Error, "canceled")
			return nil, fmt.Errorf("level %d: %w", index, err)
		}
		exhausted := &ExhaustedError{Level: index, Attempts: attempts, Last: last}
		span.RecordError(exhausted)
		span.SetStatus(codes.Error, StateExhaustedRetries.String())
		return nil, exhausted
	}

	span.SetAttributes(
		attribute.Int("level.treasures", result.TreasureCount),
		attribute.Int("level.chests", result.ChestCount),
	)
	g.logger.Printf("level %d generated in %d attempt(s) (treasures: %d, chests: %d)",
		index, attempts, result.TreasureCount, result.ChestCount)
	return result, nil
}

// attempt runs the state machine once from a fresh layout. On failure it
// returns the state that rejected the attempt.
func (g *Generator) attempt(rng *rand.Rand, index int) (*Level, State, error) {
	var (
		grid      *world.Grid
		placement *world.Placement
	)

	state := StateSynthesizing
	for {
		switch state {
		case StateSynthesizing:
			grid = world.Synthesize(rng, g.cfg.GridSize, index, g.cfg.Tuning)
			state = StatePlacing

		case StatePlacing:
			p, err := world.Place(grid, rng, g.cfg.Rules)
			if err != nil {
				return nil, StatePlacing, err
			}
			placement = p
			state = StateValidating

		case StateValidating:
			if err := checkReachable(grid, placement); err != nil {
				return nil, StateValidating, err
			}
			state = StateSuccess

		case StateSuccess:
			placement.Stamp(grid)
			return newLevel(index, grid, placement), StateSuccess, nil

		default:
			return nil, state, fmt.Errorf("unexpected state %s", state)
		}
	}
}

// checkReachable verifies the portal, then every treasure, then every chest
// can be reached from the start. The first failure is returned.
func checkReachable(g *world.Grid, p *world.Placement) error {
	reach := world.Reachable(g, p.Start)
	for _, pt := range p.Points() {
		if !reach.Contains(pt) {
			return fmt.Errorf("%w: %v from start %v", ErrUnreachable, pt, p.Start)
		}
	}
	return nil
}

// GenerateSet produces levels 1..TotalLevels. Any level that exhausts its
// attempts aborts the whole set.
func (g *Generator) GenerateSet(ctx context.Context) (*Set, error) {
	ctx, span := g.tracer.Start(ctx, "levelset.generate")
	defer span.End()

	startTime := time.Now()
	levels := make([]Level, g.cfg.TotalLevels)

	if g.cfg.Workers <= 1 {
		for i := range levels {
			lvl, err := g.GenerateLevel(ctx, i+1)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "level generation failed")
				return nil, err
			}
			levels[i] = *lvl
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(g.cfg.Workers)
		for i := range levels {
			eg.Go(func() error {
				lvl, err := g.GenerateLevel(egCtx, i+1)
				if err != nil {
					return err
				}
				levels[i] = *lvl
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "level generation failed")
			return nil, err
		}
	}

	set := &Set{
		Metadata: g.metadata(),
		Levels:   levels,
	}

	span.SetAttributes(
		attribute.Int("levelset.levels", len(levels)),
		attribute.Int64("levelset.seed", g.seed),
		attribute.String("levelset.run_id", set.Metadata.RunID),
		attribute.Int64("levelset.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return set, nil
}

func (g *Generator) metadata() Metadata {
	return Metadata{
		GridSize:    g.cfg.GridSize,
		TotalLevels: g.cfg.TotalLevels,
		CellTypes:   world.Legend(),
		Rewards: Rewards{
			TreasureDiamonds: g.cfg.Rules.TreasureReward,
			ChestDiamondsRange: Range{
				Min: g.cfg.Rules.MinChestReward,
				Max: g.cfg.Rules.MaxChestReward,
			},
		},
		Generated: g.now().UTC(),
		Seed:      g.seed,
		RunID:     RunID(g.seed, g.cfg).String(),
	}
}

// runNamespace scopes run identifiers to this generator.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/huaigu/monad-dungeon-quest/levelset"))

// RunID identifies a level set by everything that determines its levels,
// so two runs with the same seed and shape share an id.
func RunID(seed int64, cfg Config) uuid.UUID {
	r, t := cfg.Rules, cfg.Tuning
	name := fmt.Sprintf("seed=%d;size=%d;levels=%d;treasures=%d-%d:%d;chests=%d-%d:%d-%d;open=%g+%g<%g;paths=%d/%d",
		seed, cfg.GridSize, cfg.TotalLevels,
		r.MinTreasures, r.MaxTreasures, r.TreasureReward,
		r.MinChests, r.MaxChests, r.MinChestReward, r.MaxChestReward,
		t.BaseOpen, t.PerLevelOpen, t.OpenCap, t.BasePaths, t.PathLevelDivisor)
	return uuid.NewSHA1(runNamespace, []byte(name))
}
