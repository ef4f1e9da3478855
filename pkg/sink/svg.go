package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/chartgrid/pkg/coord"
	"github.com/matzehuels/chartgrid/pkg/layout"
	"github.com/matzehuels/chartgrid/pkg/option"
)

const (
	tickLength = 5
	fontFamily = "Helvetica, Arial, sans-serif"
	pointSize  = 3
)

// DefaultPalette is cycled through by series index.
var DefaultPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ticks   bool
	labels  bool
	columns bool
	palette []string
}

func WithTicks() SVGOption   { return func(r *svgRenderer) { r.ticks = true } }
func WithLabels() SVGOption  { return func(r *svgRenderer) { r.labels = true } }
func WithColumns() SVGOption { return func(r *svgRenderer) { r.columns = true } }

// WithPalette replaces the series colors. An empty palette is ignored.
func WithPalette(colors ...string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	g := l.Grid
	fmt.Fprintf(&buf, `  <rect class="grid" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#ccc"/>`+"\n",
		g.X, g.Y, g.Width, g.Height)

	if r.columns {
		for _, c := range l.Cartesians {
			renderColumns(&buf, l, c)
		}
	}
	for _, sr := range l.Series {
		renderSeries(&buf, &r, sr)
	}
	renderAxes(&buf, &r, l)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) color(series int) string {
	return r.palette[series%len(r.palette)]
}

func renderAxes(buf *bytes.Buffer, r *svgRenderer, l *layout.Layout) {
	seen := make(map[string]bool)
	for _, c := range l.Cartesians {
		for _, a := range []struct {
			key  string
			axis layout.Axis
		}{
			{fmt.Sprintf("x%d", c.X.Index), c.X},
			{fmt.Sprintf("y%d", c.Y.Index), c.Y},
		} {
			if seen[a.key] {
				continue
			}
			seen[a.key] = true
			renderAxis(buf, r, a.key, a.axis)
		}
	}
}

func renderAxis(buf *bytes.Buffer, r *svgRenderer, id string, a layout.Axis) {
	horizontal := coord.Position(a.Position).Horizontal()
	fmt.Fprintf(buf, `  <g class="axis" id="axis-%s">`+"\n", id)
	if horizontal {
		line(buf, a.Extent[0], a.OtherCoord, a.Extent[1], a.OtherCoord)
	} else {
		line(buf, a.OtherCoord, a.Extent[0], a.OtherCoord, a.Extent[1])
	}

	out := float64(tickLength)
	if a.Position == string(coord.Top) || a.Position == string(coord.Left) {
		out = -out
	}
	for _, t := range a.Ticks {
		if r.ticks {
			if horizontal {
				line(buf, t.Coord, a.OtherCoord, t.Coord, a.OtherCoord+out)
			} else {
				line(buf, a.OtherCoord, t.Coord, a.OtherCoord+out, t.Coord)
			}
		}
		if r.labels {
			anchor, baseline := labelAlign(coord.Position(a.Position))
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-family="%s" font-size="11">%s</text>`+"\n",
				t.LabelX, t.LabelY, anchor, baseline, fontFamily, escapeXML(t.Label))
		}
	}
	buf.WriteString("  </g>\n")
}

func labelAlign(p coord.Position) (anchor, baseline string) {
	switch p {
	case coord.Top:
		return "middle", "auto"
	case coord.Bottom:
		return "middle", "hanging"
	case coord.Left:
		return "end", "middle"
	default:
		return "start", "middle"
	}
}

func line(buf *bytes.Buffer, x1, y1, x2, y2 float64) {
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333"/>`+"\n", x1, y1, x2, y2)
}

func renderColumns(buf *bytes.Buffer, l *layout.Layout, c layout.Cartesian) {
	if c.Band == nil {
		return
	}
	cat := c.X
	if cat.Kind != coord.KindCategory {
		cat = c.Y
	}
	horizontal := coord.Position(cat.Position).Horizontal()
	g := l.Grid
	for _, t := range cat.Ticks {
		for _, col := range c.Band.Columns {
			x, y, w, h := t.Coord+col.Offset, g.Y, col.Width, g.Height
			if !horizontal {
				x, y, w, h = g.X, t.Coord+col.Offset, g.Width, col.Width
			}
			fmt.Fprintf(buf, `  <rect class="column" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#ddd" stroke-dasharray="2,2"/>`+"\n",
				x, y, w, h)
		}
	}
}

func renderSeries(buf *bytes.Buffer, r *svgRenderer, sr layout.Series) {
	if sr.Excluded {
		return
	}
	color := r.color(sr.Index)
	fmt.Fprintf(buf, `  <g class="series series-%s" id="series-%d">`+"\n", sr.Type, sr.Index)

	for _, area := range sr.Areas {
		fmt.Fprintf(buf, `    <polygon points="%s" fill="%s" fill-opacity="0.3" stroke="none"/>`+"\n", pointList(area), color)
	}
	for _, b := range sr.Bars {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			b.X, b.Y, b.Width, b.Height, color)
	}
	for _, seg := range sr.Lines {
		fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", pointList(seg.Points), color)
	}
	if sr.Type != option.SeriesLine {
		for _, p := range sr.Points {
			if p.Missing {
				continue
			}
			fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%d" fill="%s"/>`+"\n", p.X, p.Y, pointSize, color)
		}
	}
	buf.WriteString("  </g>\n")
}

func pointList(ps []coord.Point) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
	}
	return strings.Join(parts, " ")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
