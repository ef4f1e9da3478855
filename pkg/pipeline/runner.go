package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/buildinfo"
	"github.com/matzehuels/chartgrid/pkg/cache"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/hittest"
	"github.com/matzehuels/chartgrid/pkg/layout"
	"github.com/matzehuels/chartgrid/pkg/observability"
	"github.com/matzehuels/chartgrid/pkg/option"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different charts.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete resolve → layout → render pipeline with caching.
// Layout warnings are logged and returned in the layout; they never fail
// the run.
func (r *Runner) Execute(ctx context.Context, chart *option.Chart, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	resolved, hash, err := Resolve(chart)
	if err != nil {
		return nil, err
	}
	result := &Result{Option: resolved, OptionHash: hash}
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.SeriesCount = len(resolved.Series)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, state, hit, err := r.LayoutWithCacheInfo(ctx, resolved, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout, result.State = l, state
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CartesianCount = len(l.Cartesians)
	result.Stats.WarningCount = len(l.Warnings)
	result.Stats.BarCount, result.Stats.LineCount, result.Stats.PointCount = l.Counts()
	result.CacheInfo.LayoutHit = hit

	for _, w := range l.Warnings {
		opts.Logger.Warn(w.Message, "code", w.Code)
	}
	opts.Logger.Info("computed layout",
		"cartesians", result.Stats.CartesianCount,
		"series", result.Stats.SeriesCount,
		"warnings", result.Stats.WarningCount,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve applies option defaults and returns the resolved chart with its
// content hash.
func Resolve(chart *option.Chart) (*option.Chart, string, error) {
	resolved, err := option.Resolve(chart)
	if err != nil {
		return nil, "", err
	}
	hash, err := cache.HashJSON(resolved)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "hash option")
	}
	return resolved, hash, nil
}

// LayoutWithCacheInfo returns the layout of a resolved chart, from the
// cache when possible. The grid state is only returned when the layout
// was computed.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, resolved *option.Chart, hash string, opts Options) (*layout.Layout, *grid.State, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{Version: buildinfo.CacheVersion()})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, nil, true, nil
			}
			// Undecodable entries are recomputed and overwritten.
		} else if err != nil {
			opts.Logger.Debug("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	state, err := r.Build(ctx, resolved)
	if err != nil {
		return nil, nil, false, err
	}
	l := layout.Build(state)

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, state, false, nil
}

// Build computes the grid state of a chart and reports it to the layout hooks.
func (r *Runner) Build(ctx context.Context, chart *option.Chart) (*grid.State, error) {
	hooks := observability.Layout()
	if chart != nil {
		hooks.OnRefreshStart(ctx, len(chart.Series))
	}
	start := time.Now()

	state, err := grid.Build(chart)
	if err != nil {
		hooks.OnRefreshComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnRefreshComplete(ctx, len(state.Cartesians()), len(state.Warnings()), time.Since(start), nil)
	return state, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, source string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(append(layoutData, source...))

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(l, source, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Pick hit-tests a pixel against a chart. An empty cartesian picks on every
// Cartesian; otherwise only on the named one.
func (r *Runner) Pick(ctx context.Context, chart *option.Chart, cartesian string, px, py float64) ([]hittest.Result, error) {
	state, err := r.Build(ctx, chart)
	if err != nil {
		return nil, err
	}
	return PickState(ctx, state, cartesian, px, py)
}

// PickState hit-tests a pixel against a built state and reports every pick
// to the layout hooks.
func PickState(ctx context.Context, state *grid.State, cartesian string, px, py float64) ([]hittest.Result, error) {
	start := time.Now()
	if cartesian == "" {
		results := hittest.Pick(state, px, py)
		for _, res := range results {
			observability.Layout().OnPick(ctx, res.Cartesian, res.Index, time.Since(start))
		}
		return results, nil
	}

	res, err := hittest.PickCartesian(state, cartesian, px, py)
	if err != nil {
		return nil, err
	}
	observability.Layout().OnPick(ctx, res.Cartesian, res.Index, time.Since(start))
	return []hittest.Result{res}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
