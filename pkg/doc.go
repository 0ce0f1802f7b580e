// Package pkg provides the core libraries for stickfigures.
//
// # Overview
//
// Stickfigures plots a small set of entities, each carrying six numeric
// attributes, as stick figures on a 2D canvas. One attribute pair drives the
// layout at a time; clicking a figure selects the next pair, and a key press
// rotates attribute values between entities. The pkg directory is organized
// into these areas:
//
//  1. [entity] - Data model, JSON decoding and the one-shot loader
//  2. [scale] - Attribute pairs and linear scales onto the canvas
//  3. [render] - Glyphs, frames, the data table and output formats
//  4. [session] - The interaction controller and its explicit state
//  5. [server] - The browser session over HTTP
//  6. [config], [errors], [observability], [httputil], [buildinfo] -
//     Supporting infrastructure
//
// # Architecture
//
// The data flow through stickfigures:
//
//	data.json (file or URL)
//	         ↓
//	    [entity] package (load + validate)
//	         ↓
//	    [session] package (state, step, rotate)
//	         ↓
//	    [scale] package (extent → pixel range)
//	         ↓
//	    [render/figure] package (glyph transitions → frames)
//	         ↓
//	    terminal cells / SVG / JSON / PNG / PDF
//
// # Quick Start
//
//	coll, err := entity.Load(ctx, "data.json")
//	if err != nil {
//	    return err // always a LOAD_FAILED error
//	}
//	sess, err := session.New(coll, scale.NewCanvas(960, 600))
//	if err != nil {
//	    return err
//	}
//	sess.HandleKey("N")  // rotate values
//	sess.AdvanceStep()   // x1/y1 → x2/y2
//	svg := sink.RenderSVG(sess.Frame(time.Now()).Settled(), sess.Canvas())
package pkg
