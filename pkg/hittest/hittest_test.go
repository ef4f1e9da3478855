package hittest

import (
	"math"
	"sync"
	"testing"

	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/grid"
	"github.com/matzehuels/chartgrid/pkg/option"
)

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func mustBuild(t *testing.T, c *option.Chart) *grid.State {
	t.Helper()
	s, err := grid.Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func weekChart() *option.Chart {
	return &option.Chart{
		XAxis: []option.Axis{{Type: option.AxisCategory, Data: []string{"mon", "tue", "wed", "thu"}}},
		YAxis: []option.Axis{{Type: option.AxisValue, Position: "left"}},
		Series: []option.Series{
			{Name: "in", Type: option.SeriesBar, Stack: "s", Data: datum.Values(3, 1, 4, 1)},
			{Name: "out", Type: option.SeriesBar, Stack: "s", Data: []datum.Datum{datum.Of(2), datum.Missing(), datum.Of(-1), datum.Of(5)}},
		},
	}
}

func TestPickCategoryEdges(t *testing.T) {
	s := mustBuild(t, weekChart())
	r := s.Rect()
	band := r.Width / 4
	midY := r.Y + r.Height/2

	tests := []struct {
		name       string
		px, py     float64
		wantIndex  int
		wantLabel  string
		wantInside bool
		wantX      float64
		wantY      float64
	}{
		{"left edge", r.X, midY, 0, "mon", true, r.X + band/2, midY},
		{"right edge", r.XEnd(), midY, 3, "thu", true, r.XEnd() - band/2, midY},
		{"just past boundary", r.X + band + 1, midY, 1, "tue", true, r.X + band*1.5, midY},
		{"just before boundary", r.X + band - 1, midY, 0, "mon", true, r.X + band/2, midY},
		{"outside top left", 0, 0, 0, "mon", false, r.X + band/2, r.Y},
		{"outside bottom right", 2000, 2000, 3, "thu", false, r.XEnd() - band/2, r.YEnd()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := PickCartesian(s, "x0y0", tt.px, tt.py)
			if err != nil {
				t.Fatal(err)
			}
			if res.Index != tt.wantIndex || res.Category != tt.wantLabel || res.Inside != tt.wantInside {
				t.Errorf("pick = index %d %q inside %v, want %d %q %v",
					res.Index, res.Category, res.Inside, tt.wantIndex, tt.wantLabel, tt.wantInside)
			}
			if !approx(res.X, tt.wantX) || !approx(res.Y, tt.wantY) {
				t.Errorf("snapped = (%v, %v), want (%v, %v)", res.X, res.Y, tt.wantX, tt.wantY)
			}
			if res.Data[0] != float64(tt.wantIndex+1) {
				t.Errorf("rank = %v, want %d", res.Data[0], tt.wantIndex+1)
			}
		})
	}
}

func TestPickCategoryCentres(t *testing.T) {
	s := mustBuild(t, weekChart())
	x := s.Cartesian(0, 0).X()
	for i := 0; i < 4; i++ {
		c := x.DataToCoord(float64(i+1), false)
		res, _ := PickCartesian(s, "x0y0", c, s.Rect().Y)
		if res.Index != i || !approx(res.X, c) {
			t.Errorf("centre %d: index %d at %v", i, res.Index, res.X)
		}
	}
}

func TestPickItems(t *testing.T) {
	s := mustBuild(t, weekChart())
	r := s.Rect()

	tests := []struct {
		px   float64
		want []Item
	}{
		{r.X, []Item{
			{Series: 0, Name: "in", Value: 3, Stacked: 3},
			{Series: 1, Name: "out", Value: 2, Stacked: 5},
		}},
		{r.X + r.Width*0.3, []Item{
			{Series: 0, Name: "in", Value: 1, Stacked: 1},
			{Series: 1, Name: "out", Missing: true},
		}},
		{r.X + r.Width*0.6, []Item{
			{Series: 0, Name: "in", Value: 4, Stacked: 4},
			{Series: 1, Name: "out", Value: -1, Stacked: -1},
		}},
	}

	for _, tt := range tests {
		res, err := PickCartesian(s, "x0y0", tt.px, r.Y)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Items) != len(tt.want) {
			t.Fatalf("items = %+v", res.Items)
		}
		for i, it := range res.Items {
			w := tt.want[i]
			if it.Series != w.Series || it.Name != w.Name || it.Missing != w.Missing {
				t.Errorf("item %d = %+v, want %+v", i, it, w)
			}
			if !w.Missing && (it.Value != w.Value || it.Stacked != w.Stacked) {
				t.Errorf("item %d = %+v, want %+v", i, it, w)
			}
		}
	}
}

func TestPickHorizontalBars(t *testing.T) {
	s := mustBuild(t, &option.Chart{
		XAxis:  []option.Axis{{Type: option.AxisValue}},
		YAxis:  []option.Axis{{Type: option.AxisCategory, Data: []string{"a", "b", "c"}}},
		Series: []option.Series{{Type: option.SeriesBar, Data: datum.Values(1, 2, 3)}},
	})
	r := s.Rect()
	band := r.Height / 3

	// The bottom x axis makes categories grow upward.
	bottom, _ := PickCartesian(s, "x0y0", r.X, r.YEnd())
	if bottom.Index != 0 || !approx(bottom.Y, r.YEnd()-band/2) || bottom.X != r.X {
		t.Errorf("bottom pick = %+v", bottom)
	}
	top, _ := PickCartesian(s, "x0y0", r.X, r.Y)
	if top.Index != 2 || top.Category != "c" {
		t.Errorf("top pick = %+v", top)
	}
	if bottom.Data[1] != 1 || top.Data[1] != 3 {
		t.Errorf("ranks = %v, %v", bottom.Data[1], top.Data[1])
	}
}

func TestPickDualValue(t *testing.T) {
	s := mustBuild(t, &option.Chart{
		XAxis: []option.Axis{{Type: option.AxisValue}},
		YAxis: []option.Axis{{Type: option.AxisValue}},
		Series: []option.Series{
			{Type: option.SeriesScatter, Data: []datum.Datum{datum.XY(0, 100), datum.XY(10, 200)}},
		},
	})
	r := s.Rect()

	res, err := PickCartesian(s, "x0y0", r.X+r.Width/4, r.YEnd())
	if err != nil {
		t.Fatal(err)
	}
	if res.Index != -1 || res.Category != "" || len(res.Items) != 0 {
		t.Errorf("dual value pick should not snap: %+v", res)
	}
	if !approx(res.Data[0], 2.5) || !approx(res.Data[1], 100) {
		t.Errorf("data = %v, want [2.5 100]", res.Data)
	}
	if !approx(res.X, r.X+r.Width/4) || res.Y != r.YEnd() {
		t.Errorf("pixel = (%v, %v)", res.X, res.Y)
	}
}

func TestPickAllCartesians(t *testing.T) {
	c := weekChart()
	c.YAxis = append(c.YAxis, option.Axis{Type: option.AxisValue})
	s := mustBuild(t, c)
	r := s.Rect()

	results := Pick(s, r.X, r.Y)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Cartesian != "x0y0" || results[0].Index != 0 {
		t.Errorf("x0y0 = %+v", results[0])
	}
	// The right y axis reverses the x axis of its Cartesian.
	if results[1].Cartesian != "x0y1" || results[1].Index != 3 || len(results[1].Items) != 0 {
		t.Errorf("x0y1 = %+v", results[1])
	}
}

func TestPickUnknownCartesian(t *testing.T) {
	s := mustBuild(t, weekChart())
	if _, err := PickCartesian(s, "x3y3", 0, 0); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("PickCartesian() = %v, want NOT_FOUND", err)
	}
}

func TestPickDuringRefresh(t *testing.T) {
	g := grid.New()
	if err := g.Refresh(weekChart()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				s := g.Snapshot()
				res, err := PickCartesian(s, "x0y0", s.Rect().X, s.Rect().Y)
				if err != nil || res.Index != 0 {
					t.Errorf("pick during refresh = %+v, %v", res, err)
					return
				}
			}
		}()
	}
	for k := 0; k < 25; k++ {
		c := weekChart()
		c.Width = float64(600 + k*10)
		if err := g.Refresh(c); err != nil {
			t.Error(err)
		}
	}
	wg.Wait()
}
