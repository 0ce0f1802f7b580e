// Package render groups the output side of stickfigures.
//
// # Overview
//
// Rendering is split by concern:
//
//   - [figure]: one glyph per entity, joined by id, with eased transitions
//     between scale-derived positions and hit testing for clicks
//   - [table]: the read-only tabular view of the loaded data
//   - [sink]: output formats for a [figure.Frame] (SVG via svgo, JSON, and
//     PNG/PDF through rsvg-convert)
//
// # Frames
//
// The figure renderer never draws directly. Surfaces ask it for a
// [figure.Frame], a snapshot of every glyph at one instant, and draw that:
//
//	frame := renderer.Frame(time.Now())
//	svg := sink.RenderSVG(frame, canvas)
//	pdf, err := sink.ToPDF(ctx, svg)
//	png, err := sink.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// The terminal session rasterizes the same frames onto character cells, and
// the browser session sends them as JSON and lets CSS transitions animate
// the glyph groups.
package render
