package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barbell/pkg/cache"
	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/observability"
	"github.com/matzehuels/barbell/pkg/plates"
)

// Default TTLs for cached outputs.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLTrace    = 7 * 24 * time.Hour
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides TTLArtifact when positive.
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

// WithKeyer returns a shallow copy of r generating keys with k. The server
// uses it to scope cache entries per client.
func (r *Runner) WithKeyer(k cache.Keyer) *Runner {
	cp := *r
	cp.Keyer = k
	return &cp
}

// Execute runs the complete calculate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Calculate
	calcStart := time.Now()
	res := Calculate(ctx, opts)
	result.Calculation = res
	result.Stats.CalculateTime = time.Since(calcStart)
	result.Stats.PlateCount = res.TotalPlates()

	opts.Logger.Debug("calculated plates",
		"target", opts.Target,
		"bar", opts.Bar,
		"ok", res.OK,
		"remainder", res.Remainder,
		"plates", result.Stats.PlateCount)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	// Geometry is cheap; rebuild it so cached runs carry it too.
	if result.Layout, _, err = BuildLayout(res, opts); err != nil {
		return nil, err
	}

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"style", opts.Style,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res plates.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit := r.get(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format)))
		if !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Style, opts.Formats)
	start := time.Now()
	rendered, _, err := Render(ctx, res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Style, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format)), data, r.ttl(TTLArtifact), opts.Logger)
	}

	return rendered, false, nil // Cache miss
}

// Trace renders the greedy walk for opts in format, with caching.
func (r *Runner) Trace(ctx context.Context, opts Options, format string) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCalculate(); err != nil {
		return nil, false, err
	}
	if err := ValidateTraceFormat(format); err != nil {
		return nil, false, err
	}

	key := r.Keyer.TraceKey(r.Keyer.LayoutKey(opts.LayoutKeyOpts()), format)
	if data, hit := r.get(ctx, key); hit {
		return data, true, nil
	}

	data, err := RenderTrace(ctx, Calculate(ctx, opts), opts, format)
	if err != nil {
		return nil, false, err
	}
	r.set(ctx, key, data, r.ttl(TTLTrace), opts.Logger)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KeyType(key))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyType(key))
	return data, true
}

func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", key, "error", errors.UserMessage(err))
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyType(key), len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
