// Package sink renders a computed [layout.Layout] into output formats.
//
// # SVG Output
//
// [RenderSVG] draws a wireframe preview of the layout: the grid
// rectangle, axis lines, bar rectangles, line polylines, filled areas and
// scatter points. It is meant for checking geometry, not for publishing.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithTicks(),
//	    sink.WithLabels(),
//	)
//
// # SVG Options
//
//   - [WithTicks]: Draw tick marks on every axis
//   - [WithLabels]: Draw tick labels at their anchors
//   - [WithColumns]: Outline the bar columns of every category band
//   - [WithPalette]: Override the series colors
//
// # JSON Output
//
// [RenderJSON] writes the layout as indented JSON, optionally tagged with
// the option hash and the engine version so a consumer can tell which
// input produced it.
package sink
