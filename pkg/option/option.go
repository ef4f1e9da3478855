// Package option decodes chart options and resolves them into the fully
// defaulted form the layout engine consumes.
//
// Option files are TOML or JSON:
//
//	width = 640
//	height = 400
//
//	[grid]
//	x = "10%"
//	y2 = 40
//
//	[[x_axis]]
//	type = "category"
//	data = ["Mon", "Tue", "Wed"]
//
//	[[y_axis]]
//	type = "value"
//
//	[[series]]
//	name = "sales"
//	type = "bar"
//	stack = "total"
//	data = [120, "-", 150]
//
// [Resolve] is the only place defaults are applied. Its result is never
// mutated by the engine; grid, series layout and hit-testing read it only.
package option

import (
	"github.com/matzehuels/chartgrid/pkg/datum"
)

// Default values applied by Resolve.
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultGridX       = 80.0
	DefaultGridY       = 60.0
	DefaultGridX2      = 80.0
	DefaultGridY2      = 60.0
	DefaultBorderWidth = 1.0
	DefaultSplitNumber = 5
)

// Default bar spacing. These are column-level defaults: a series that sets
// bar_gap or bar_category_gap overrides them for every bar on its
// Cartesian, the last such series winning.
var (
	DefaultBarGap         = Pct(30)
	DefaultBarCategoryGap = Pct(20)
)

// Axis types.
const (
	AxisCategory = "category"
	AxisValue    = "value"
)

// Series types.
const (
	SeriesBar     = "bar"
	SeriesLine    = "line"
	SeriesScatter = "scatter"
)

// Chart is a complete chart option.
type Chart struct {
	Width  float64  `toml:"width" json:"width,omitempty"`
	Height float64  `toml:"height" json:"height,omitempty"`
	Grid   Grid     `toml:"grid" json:"grid"`
	XAxis  []Axis   `toml:"x_axis" json:"x_axis"`
	YAxis  []Axis   `toml:"y_axis" json:"y_axis"`
	Series []Series `toml:"series" json:"series"`

	resolved bool
}

// Grid positions the plotting rectangle inside the container.
type Grid struct {
	X           Length   `toml:"x" json:"x"`
	Y           Length   `toml:"y" json:"y"`
	X2          Length   `toml:"x2" json:"x2"`
	Y2          Length   `toml:"y2" json:"y2"`
	Width       Length   `toml:"width" json:"width"`
	Height      Length   `toml:"height" json:"height"`
	BorderWidth *float64 `toml:"border_width" json:"border_width,omitempty"`
}

// Axis configures one x or y axis.
type Axis struct {
	Type        string   `toml:"type" json:"type,omitempty"`
	Data        []string `toml:"data" json:"data,omitempty"`
	Position    string   `toml:"position" json:"position,omitempty"`
	Min         *float64 `toml:"min" json:"min,omitempty"`
	Max         *float64 `toml:"max" json:"max,omitempty"`
	BoundaryGap *bool    `toml:"boundary_gap" json:"boundary_gap,omitempty"`
	SplitNumber int      `toml:"split_number" json:"split_number,omitempty"`
	// Scale detaches a value axis carrying bars from zero so its extent
	// hugs the data.
	Scale       bool     `toml:"scale" json:"scale,omitempty"`
}

// IsCategory reports whether the axis is a category axis.
func (a Axis) IsCategory() bool { return a.Type == AxisCategory }

// Series configures one data series.
type Series struct {
	Name           string        `toml:"name" json:"name,omitempty"`
	Type           string        `toml:"type" json:"type"`
	Data           []datum.Datum `toml:"data" json:"data"`
	XAxisIndex     int           `toml:"x_axis_index" json:"x_axis_index,omitempty"`
	YAxisIndex     int           `toml:"y_axis_index" json:"y_axis_index,omitempty"`
	Stack          string        `toml:"stack" json:"stack,omitempty"`
	BarWidth       Length        `toml:"bar_width" json:"bar_width"`
	BarMaxWidth    Length        `toml:"bar_max_width" json:"bar_max_width"`
	BarGap         Length        `toml:"bar_gap" json:"bar_gap"`
	BarCategoryGap Length        `toml:"bar_category_gap" json:"bar_category_gap"`
	Area           bool          `toml:"area" json:"area,omitempty"`
}

// Resolved reports whether c was produced by Resolve.
func (c *Chart) Resolved() bool { return c != nil && c.resolved }
