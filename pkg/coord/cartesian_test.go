package coord

import (
	"testing"

	"github.com/matzehuels/chartgrid/pkg/datum"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/scale"
)

// barCartesian is a category x axis at the bottom over [0, 300] with a value
// y axis on the left over [0, 100] reversed to screen [200, 0].
func barCartesian(t *testing.T) *Cartesian {
	t.Helper()
	c := NewCartesian(Name(0, 0))

	x := NewAxis(DimX, 0, scale.NewOrdinal([]string{"a", "b", "c"}), Bottom)
	x.SetExtent(0, 300)

	ys := scale.NewInterval(scale.IntervalOptions{})
	_ = ys.SetExtent(0, 100)
	y := NewAxis(DimY, 0, ys, Left)
	y.SetExtent(0, 200)
	y.Reverse()

	if err := c.AddAxis(x); err != nil {
		t.Fatal(err)
	}
	if err := c.AddAxis(y); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestName(t *testing.T) {
	if got := Name(1, 0); got != "x1y0" {
		t.Errorf("Name(1, 0) = %q, want x1y0", got)
	}
}

func TestAddAxisDuplicate(t *testing.T) {
	c := barCartesian(t)
	err := c.AddAxis(NewAxis(DimX, 1, scale.NewOrdinal(nil), Top))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddAxis duplicate = %v, want INVALID_INPUT", err)
	}
	if len(c.Axes()) != 2 {
		t.Errorf("len(Axes()) = %d, want 2", len(c.Axes()))
	}
}

func TestAxesByKind(t *testing.T) {
	c := barCartesian(t)

	if got := c.AxesByKind(KindCategory); len(got) != 1 || got[0].Dim != DimX {
		t.Errorf("AxesByKind(category) = %v", got)
	}
	if got := c.CategoryAxis(); got == nil || got.Dim != DimX {
		t.Errorf("CategoryAxis() = %v", got)
	}
	if got := c.ValueAxis(); got.Dim != DimY {
		t.Errorf("ValueAxis().Dim = %v, want y", got.Dim)
	}
	if !c.Valid() || c.Swapped() {
		t.Errorf("Valid() = %v, Swapped() = %v", c.Valid(), c.Swapped())
	}
}

func TestDataToCoords(t *testing.T) {
	c := barCartesian(t)
	data := []datum.Datum{datum.Of(0), datum.Missing(), datum.Of(100)}

	got := c.DataToCoords(data)
	want := []Point{
		{X: 50, Y: 200},
		{Missing: true},
		{X: 250, Y: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Missing != want[i].Missing {
			t.Errorf("[%d].Missing = %v", i, got[i].Missing)
			continue
		}
		if !want[i].Missing && (!approx(got[i].X, want[i].X) || !approx(got[i].Y, want[i].Y)) {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDataToCoordsSwapped(t *testing.T) {
	c := NewCartesian(Name(0, 0))

	xs := scale.NewInterval(scale.IntervalOptions{})
	_ = xs.SetExtent(0, 10)
	x := NewAxis(DimX, 0, xs, Left)
	x.SetExtent(100, 0)

	y := NewAxis(DimY, 0, scale.NewOrdinal([]string{"p", "q"}), Bottom)
	y.SetExtent(0, 200)

	_ = c.AddAxis(x)
	_ = c.AddAxis(y)

	if !c.Swapped() {
		t.Fatal("Swapped() = false")
	}

	// Category on y means rank goes on y; y runs horizontally here.
	pts := c.DataToCoords([]datum.Datum{datum.Of(5), datum.Of(10)})
	if !approx(pts[0].X, 50) || !approx(pts[0].Y, 50) {
		t.Errorf("pts[0] = %+v, want (50, 50)", pts[0])
	}
	if !approx(pts[1].X, 150) || !approx(pts[1].Y, 0) {
		t.Errorf("pts[1] = %+v, want (150, 0)", pts[1])
	}

	xv, yv := c.PointToData(150, 0, false)
	if !approx(xv, 10) || yv != 2 {
		t.Errorf("PointToData = (%v, %v), want (10, 2)", xv, yv)
	}
}

func TestDataToCoordsDualValue(t *testing.T) {
	c := NewCartesian(Name(0, 0))
	xs := scale.NewInterval(scale.IntervalOptions{})
	_ = xs.SetExtent(0, 10)
	ys := scale.NewInterval(scale.IntervalOptions{})
	_ = ys.SetExtent(0, 10)
	x := NewAxis(DimX, 0, xs, Bottom)
	x.SetExtent(0, 100)
	y := NewAxis(DimY, 0, ys, Left)
	y.SetExtent(100, 0)
	_ = c.AddAxis(x)
	_ = c.AddAxis(y)

	if c.CategoryAxis() != nil {
		t.Fatal("CategoryAxis() should be nil")
	}

	pts := c.DataToCoords([]datum.Datum{datum.XY(2, 8), datum.Of(3)})
	if !approx(pts[0].X, 20) || !approx(pts[0].Y, 20) {
		t.Errorf("pts[0] = %+v, want (20, 20)", pts[0])
	}
	if !pts[1].Missing {
		t.Error("plain value on two value axes should be missing")
	}
}
