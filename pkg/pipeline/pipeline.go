// Package pipeline provides the resolve → layout → render pipeline for
// chartgrid.
//
// The CLI and the HTTP server both run charts through a [Runner], so option
// resolution, caching and warning reporting behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Apply defaults to the chart option and hash the result
//  2. Layout: Build the grid state and flatten it into a [layout.Layout]
//  3. Render: Generate output in the requested formats (SVG, JSON)
//
// Layouts are cached under the option hash, artifacts under the layout
// hash plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, chart, pipeline.Options{
//	    Formats: []string{"svg"},
//	    Ticks:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgrid/pkg/cache"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/layout"
	"github.com/matzehuels/chartgrid/pkg/option"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options configures one pipeline run. The chart option itself is passed
// separately.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Ticks   bool     `json:"ticks,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Columns bool     `json:"columns,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Option is the resolved chart option.
	Option *option.Chart

	// OptionHash is the content hash of Option.
	OptionHash string

	// State is the grid state, nil when the layout came from the cache.
	State *grid.State

	Layout    *layout.Layout
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount    int
	CartesianCount int
	BarCount       int
	LineCount      int
	PointCount     int
	WarningCount   int
	ResolveTime    time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool `json:"layout"` // Whether the layout came from cache
	RenderHit bool `json:"render"` // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the formats and applies defaults.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// JSON output ignores the drawing flags.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	if format == FormatJSON {
		return cache.ArtifactKeyOpts{Format: format}
	}
	return cache.ArtifactKeyOpts{
		Format:  format,
		Ticks:   o.Ticks,
		Labels:  o.Labels,
		Columns: o.Columns,
	}
}
