package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratetower/pkg/cache"
	"github.com/matzehuels/cratetower/pkg/observability"
	"github.com/matzehuels/cratetower/pkg/report"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default expiry of cached entries when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRun is what the runner stores per cache key. The rendered diagram is
// kept next to the report because the report does not serialize it.
type cachedRun struct {
	Report  *report.Report `json:"report"`
	Diagram string         `json:"diagram"`
	Stats   Stats          `json:"stats"`
}

// Execute runs the complete parse → simulate pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.ResultKey(cache.HashInput(opts.Input), opts.ResultKeyOpts())
	if res, ok := r.lookup(ctx, key, cache.KeyTypeResult, opts); ok {
		r.Logger.Info("simulated (cached)", "run_id", opts.RunID, "mode", opts.Mode, "tops", res.Report.Tops)
		return res, nil
	}

	result := &Result{RunID: opts.RunID, CacheInfo: CacheInfo{Key: key}}
	result.Stats.InputBytes = len(opts.Input)

	// Stage 1: Parse
	parseStart := time.Now()
	pz, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Stacks = pz.Yard.Size()
	result.Stats.Instructions = len(pz.Instructions)

	r.Logger.Debug("parsed input",
		"run_id", opts.RunID,
		"stacks", result.Stats.Stacks,
		"instructions", result.Stats.Instructions,
		"duration", result.Stats.ParseTime)

	// Stage 2: Simulate
	simStart := time.Now()
	sim, err := Simulate(ctx, pz, opts)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	result.Stats.SimulateTime = time.Since(simStart)
	result.Stats.Moved = sim.Moved()
	result.Report = report.FromYard(sim.Yard(), sim.Mode())

	r.Logger.Info("simulated",
		"run_id", opts.RunID,
		"mode", opts.Mode,
		"moves", sim.Applied(),
		"crates", sim.Moved(),
		"tops", result.Report.Tops,
		"duration", result.Stats.SimulateTime)

	r.store(ctx, key, cache.KeyTypeResult, cache.TTLResult, result)
	return result, nil
}

// Inspect parses the input without simulating and reports the initial yard.
// Results are cached under a key that ignores the crane mode.
func (r *Runner) Inspect(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.ParseKey(cache.HashInput(opts.Input), opts.CommentMarker)
	if res, ok := r.lookup(ctx, key, cache.KeyTypeParse, opts); ok {
		res.Report.Mode = opts.CraneMode()
		return res, nil
	}

	start := time.Now()
	pz, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result := &Result{
		RunID:     opts.RunID,
		Report:    report.FromYard(pz.Yard, opts.CraneMode()),
		CacheInfo: CacheInfo{Key: key},
		Stats: Stats{
			InputBytes:   len(opts.Input),
			Stacks:       pz.Yard.Size(),
			Instructions: len(pz.Instructions),
			ParseTime:    time.Since(start),
		},
	}

	r.Logger.Info("parsed",
		"run_id", opts.RunID,
		"stacks", result.Stats.Stacks,
		"instructions", result.Stats.Instructions,
		"duration", result.Stats.ParseTime)

	r.store(ctx, key, cache.KeyTypeParse, cache.TTLParse, result)
	return result, nil
}

// lookup returns a cached result for key. Refresh requests, backend errors
// and undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, opts Options) (*Result, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key_type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}

	var cached cachedRun
	if err := json.Unmarshal(data, &cached); err != nil || cached.Report == nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)

	cached.Report.Diagram = cached.Diagram
	return &Result{
		RunID:     opts.RunID,
		Report:    cached.Report,
		Stats:     cached.Stats,
		CacheInfo: CacheInfo{Hit: true, Key: key},
	}, true
}

// store writes res to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, ttl time.Duration, res *Result) {
	data, err := json.Marshal(cachedRun{
		Report:  res.Report,
		Diagram: res.Report.Diagram,
		Stats:   res.Stats,
	})
	if err != nil {
		return
	}
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key_type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
