// Package figure maintains one stick-figure glyph per entity and animates
// glyphs between scale-derived positions.
//
// The [Renderer] keeps an explicit map from entity id to [Glyph]. Glyphs are
// created once by [Renderer.Initialize] and afterwards only retargeted by
// [Renderer.Update], so a glyph's handle and color stay bound to its id for
// the lifetime of the renderer no matter how often values rotate or the
// step changes.
//
// # Transitions
//
// Update does not move glyphs instantly. Each glyph gets a [Transition] from
// its current interpolated position to its new target, lasting
// [DefaultDuration] with cubic in-out easing. Issuing a new Update while a
// transition is running simply retargets it from wherever the glyph is at
// that moment; the settled position depends only on the latest Update.
//
// # Frames
//
// [Renderer.Frame] derives a [Frame] snapshot for a point in time. Sinks
// (SVG, terminal, JSON) draw frames and never touch glyphs directly.
//
// A Renderer is not safe for concurrent use.
package figure
