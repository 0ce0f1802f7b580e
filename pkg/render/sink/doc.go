// Package sink writes figure frames to output formats.
//
// [RenderSVG] draws a [figure.Frame] as a standalone SVG document using
// github.com/ajstarks/svgo. Each glyph becomes a <g class="omino"> group
// with a head circle, body, arm and leg strokes, and a coordinate label, all
// colored with the glyph's palette color. Group ids are derived from glyph
// handles so that interactive surfaces can address glyphs across frames.
//
// With [WithInteraction] the document also carries a stylesheet that
// animates group transforms and a script that posts glyph clicks and key
// presses to a session API and applies the frames it returns.
//
// [RenderJSON] encodes a frame for API clients. [ToPNG] and [ToPDF] convert
// SVG output with rsvg-convert.
package sink
