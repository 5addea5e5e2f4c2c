// Package main is the entry point for the dungeon level-set generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/huaigu/monad-dungeon-quest/internal/dungeondata"
	"github.com/huaigu/monad-dungeon-quest/internal/level"
	"github.com/huaigu/monad-dungeon-quest/internal/telemetry"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = telemetry.DefaultServiceVersion

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg := level.DefaultConfig()
	out := flag.String("out", envString("DUNGEONGEN_OUTPUT", filepath.Join("public", dungeondata.DefaultFile)), "output artifact path")
	flag.Int64Var(&cfg.Seed, "seed", envInt64("DUNGEONGEN_SEED", 0), "RNG seed (0 = random)")
	flag.IntVar(&cfg.TotalLevels, "levels", int(envInt64("DUNGEONGEN_LEVELS", int64(cfg.TotalLevels))), "number of levels")
	flag.IntVar(&cfg.Workers, "workers", int(envInt64("DUNGEONGEN_WORKERS", int64(cfg.Workers))), "levels generated concurrently")
	flag.IntVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "attempts per level before giving up")
	traceOpts := telemetry.DefaultOptions()
	traceOpts.ServiceVersion = version
	flag.Float64Var(&traceOpts.SampleRatio, "trace-sample", envFloat("DUNGEONGEN_TRACE_SAMPLE", traceOpts.SampleRatio), "fraction of runs traced (0..1)")
	flag.Parse()

	setupOTelEnv()

	if err := generate(context.Background(), cfg, traceOpts, *out); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}

// generate wraps run with telemetry so spans are flushed before main exits.
func generate(ctx context.Context, cfg level.Config, traceOpts telemetry.Options, out string) error {
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, traceOpts)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Generating without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}
	return run(ctx, cfg, out)
}

func run(ctx context.Context, cfg level.Config, out string) error {
	gen, err := level.New(cfg)
	if err != nil {
		return err
	}

	log.Printf("Generating %d levels (seed %d)", cfg.TotalLevels, gen.Seed())
	startTime := time.Now()

	set, err := gen.GenerateSet(ctx)
	if err != nil {
		return err
	}

	n, err := dungeondata.WriteSet(out, set)
	if err != nil {
		return err
	}

	log.Printf("Wrote %s (%s) in %v", out, humanize.Bytes(uint64(n)), time.Since(startTime).Round(time.Millisecond))
	log.Printf("Levels: %d, grid: %dx%d, run: %s", len(set.Levels), set.Metadata.GridSize, set.Metadata.GridSize, set.Metadata.RunID)
	for i := range set.Levels {
		l := &set.Levels[i]
		d := dungeondata.LevelDiamonds(l)
		log.Printf("  level %d: %d treasures (%d diamonds), %d chests (%d diamonds), %d total",
			l.Level, l.TreasureCount, d.Treasure, l.ChestCount, d.Chest, d.Total)
	}
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// Telemetry stays off unless an API key or an explicit endpoint is present.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DUNGEONGEN_API_KEY")
	if apiKey == "" {
		return
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	dataset := os.Getenv("HONEYCOMB_DUNGEONGEN_DATASET")
	if dataset == "" {
		dataset = "dungeongen" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return f
}
