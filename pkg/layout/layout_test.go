package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/option"
)

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func mixedChart() *option.Chart {
	return &option.Chart{
		XAxis: []option.Axis{{Type: option.AxisCategory, Data: []string{"q1", "q2", "q3"}}},
		YAxis: []option.Axis{{Type: option.AxisValue}},
		Series: []option.Series{
			{Name: "sales", Type: option.SeriesBar, Stack: "total", Data: datum.Values(3, 4, 5)},
			{Name: "returns", Type: option.SeriesBar, Stack: "total", Data: datum.Values(1, 1, 2)},
			{Name: "trend", Type: option.SeriesLine, Area: true,
				Data: []datum.Datum{datum.Of(2), datum.Missing(), datum.Of(6)}},
			{Name: "lost", Type: option.SeriesLine, YAxisIndex: 3, Data: datum.Values(1)},
		},
	}
}

func build(t *testing.T, c *option.Chart) *Layout {
	t.Helper()
	s, err := grid.Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Build(s)
}

func TestBuild(t *testing.T) {
	l := build(t, mixedChart())

	if l.Width != 800 || l.Height != 600 {
		t.Errorf("size = %vx%v, want defaults", l.Width, l.Height)
	}
	if l.Grid != (grid.Rect{X: 80.5, Y: 60.5, Width: 640, Height: 480}) {
		t.Errorf("grid = %+v", l.Grid)
	}
	if len(l.Cartesians) != 1 || l.Cartesians[0].Name != "x0y0" {
		t.Fatalf("cartesians = %+v", l.Cartesians)
	}
	if len(l.Series) != 4 {
		t.Fatalf("series = %d, want 4", len(l.Series))
	}
}

func TestBuildAxes(t *testing.T) {
	l := build(t, mixedChart())
	c := l.CartesianByName("x0y0")
	if c == nil {
		t.Fatal("x0y0 missing")
	}

	x := c.X
	if x.Kind != coord.KindCategory || x.Position != "bottom" {
		t.Errorf("x axis = %+v", x)
	}
	if !approx(x.BandWidth, 640.0/3) {
		t.Errorf("band width = %v", x.BandWidth)
	}
	if len(x.Ticks) != 3 || x.Ticks[1].Label != "q2" {
		t.Fatalf("x ticks = %+v", x.Ticks)
	}
	if tk := x.Ticks[0]; !approx(tk.LabelY, x.OtherCoord+coord.LabelMargin) || tk.LabelX != tk.Coord {
		t.Errorf("bottom label anchor = (%v, %v)", tk.LabelX, tk.LabelY)
	}

	y := c.Y
	if y.Kind != coord.KindValue || y.BandWidth != 0 {
		t.Errorf("y axis = %+v", y)
	}
	if y.Data != [2]float64{0, 7} {
		t.Errorf("y data extent = %v, want [0 7]", y.Data)
	}
	if tk := y.Ticks[0]; !approx(tk.LabelX, y.OtherCoord-coord.LabelMargin) || tk.LabelY != tk.Coord {
		t.Errorf("left label anchor = (%v, %v)", tk.LabelX, tk.LabelY)
	}
}

func TestBuildSeriesGeometry(t *testing.T) {
	l := build(t, mixedChart())
	c := l.CartesianByName("x0y0")

	if c.Band == nil || len(c.Band.Columns) != 1 || c.Band.Columns[0].Stack != "total" {
		t.Fatalf("band = %+v", c.Band)
	}

	sales, returns := l.Series[0], l.Series[1]
	if len(sales.Bars) != 3 || len(returns.Bars) != 3 || sales.Points != nil {
		t.Fatalf("bars = %d/%d", len(sales.Bars), len(returns.Bars))
	}
	// Returns are stacked on top of sales, so their bottom edge is the sales top.
	for i := range sales.Bars {
		if !approx(returns.Bars[i].Y+returns.Bars[i].Height, sales.Bars[i].Y) {
			t.Errorf("bar %d: returns bottom %v, sales top %v",
				i, returns.Bars[i].Y+returns.Bars[i].Height, sales.Bars[i].Y)
		}
	}

	trend := l.Series[2]
	if len(trend.Points) != 3 || !trend.Points[1].Missing {
		t.Errorf("trend points = %+v", trend.Points)
	}
	if len(trend.Lines) != 2 || trend.Lines[1].Start != 2 {
		t.Errorf("trend lines = %+v", trend.Lines)
	}
	if len(trend.Areas) != 2 || len(trend.Areas[0]) != 3 {
		t.Errorf("trend areas = %+v", trend.Areas)
	}

	lost := l.Series[3]
	if !lost.Excluded || lost.Cartesian != "" || lost.Points != nil {
		t.Errorf("excluded series = %+v", lost)
	}
}

func TestBuildWarnings(t *testing.T) {
	l := build(t, mixedChart())
	if len(l.Warnings) != 1 || l.Warnings[0].Code != errors.ErrCodeInvalidAxisIndex {
		t.Errorf("warnings = %+v", l.Warnings)
	}
}

func TestBuildDualValueBars(t *testing.T) {
	l := build(t, &option.Chart{
		XAxis:  []option.Axis{{Type: option.AxisValue}},
		YAxis:  []option.Axis{{Type: option.AxisValue}},
		Series: []option.Series{{Type: option.SeriesBar, Data: []datum.Datum{datum.XY(1, 2), datum.XY(3, 4)}}},
	})
	if l.Cartesians[0].Band != nil {
		t.Error("dual value Cartesian should have no band")
	}
	if sr := l.Series[0]; len(sr.Bars) != 0 || len(sr.Points) != 2 {
		t.Errorf("dual value bars = %+v", sr)
	}
}

func TestCounts(t *testing.T) {
	l := build(t, mixedChart())
	bars, lines, points := l.Counts()
	if bars != 6 || lines != 2 || points != 0 {
		t.Errorf("Counts() = %d, %d, %d", bars, lines, points)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	l := build(t, mixedChart())
	data, err := Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	if got.Grid != l.Grid || len(got.Series) != len(l.Series) {
		t.Errorf("round trip lost data: %+v", got)
	}
	band := got.CartesianByName("x0y0").Band
	if band == nil || band.Columns[0] != l.Cartesians[0].Band.Columns[0] {
		t.Fatalf("band = %+v", band)
	}
	if band.Gap != l.Cartesians[0].Band.Gap {
		t.Errorf("bar gap = %v, want %v", band.Gap, l.Cartesians[0].Band.Gap)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal() = %v, want INVALID_FORMAT", err)
	}
}
