package sink

import (
	"bytes"
	"fmt"
	"html"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
)

// interactionCSS animates glyph groups between server-issued positions.
// The bezier approximates cubic in-out easing.
const interactionCSS = `
    .omino { cursor: pointer; transition: transform %dms cubic-bezier(0.645, 0.045, 0.355, 1); }
    .coord-label { user-select: none; }`

const interactionJS = `
    (function () {
      const api = %q;
      function apply(frame) {
        if (!frame) return;
        frame.glyphs.forEach(g => {
          const el = document.getElementById('glyph-' + g.handle);
          if (!el) return;
          el.style.transform = 'translate(' + g.target_x + 'px, ' + g.target_y + 'px)';
          const label = el.querySelector('text.coord-label');
          if (label) label.textContent = g.label;
        });
      }
      function post(path, body) {
        return fetch(api + path, {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: body ? JSON.stringify(body) : null,
        }).then(r => r.ok ? r.json() : null).then(apply);
      }
      document.querySelectorAll('.omino').forEach(el => {
        el.addEventListener('click', () => post('/glyphs/' + el.dataset.handle + '/activate'));
      });
      window.addEventListener('keydown', ev => {
        if (ev.key.length === 1 && !ev.ctrlKey && !ev.metaKey && !ev.altKey) post('/key', { key: ev.key });
      });
      fetch(api + '/frame').then(r => r.json()).then(f => requestAnimationFrame(() => apply(f)));
    })();`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	apiBase     string
	settled     bool
	title       string
}

// WithInteraction adds the stylesheet and script that drive a browser
// session through the API rooted at apiBase.
func WithInteraction(apiBase string) SVGOption {
	return func(r *svgRenderer) {
		r.interactive = true
		r.apiBase = apiBase
	}
}

// WithSettled draws glyphs at their targets instead of their current
// interpolated positions.
func WithSettled() SVGOption { return func(r *svgRenderer) { r.settled = true } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws f on a canvas-sized SVG document.
func RenderSVG(f figure.Frame, canvas scale.Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.settled {
		f = f.Settled()
	}

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Start(int(canvas.Width), int(canvas.Height), `id="canvas"`)
	if r.title != "" {
		doc.Title(r.title)
	}
	if r.interactive {
		doc.Style("text/css", fmt.Sprintf(interactionCSS, f.DurationMS))
	}
	for _, g := range f.Glyphs {
		r.renderGlyph(doc, g)
	}
	if r.interactive {
		doc.Script("text/javascript", fmt.Sprintf(interactionJS, r.apiBase))
	}
	doc.End()
	return buf.Bytes()
}

func (r svgRenderer) renderGlyph(doc *svg.SVG, g figure.GlyphState) {
	attrs := []string{
		`class="omino"`,
		attr("id", "glyph-"+g.Handle),
		attr("data-id", string(g.ID)),
		attr("data-handle", g.Handle),
	}
	if r.interactive {
		attrs = append(attrs, attr("style", fmt.Sprintf("transform: translate(%.2fpx, %.2fpx)", g.X, g.Y)))
	} else {
		attrs = append(attrs, attr("transform", fmt.Sprintf("translate(%.2f,%.2f)", g.X, g.Y)))
	}

	stroke := []string{`class="omino-body"`, attr("stroke", g.Color), fmt.Sprintf(`stroke-width="%d"`, figure.StrokeWidth)}

	doc.Group(attrs...)
	doc.Circle(0, figure.HeadY, figure.HeadRadius, `class="omino-head"`, attr("fill", g.Color))
	doc.Line(0, figure.BodyTop, 0, figure.BodyBottom, stroke...)
	doc.Line(-figure.ArmSpan, figure.ArmY, figure.ArmSpan, figure.ArmY, stroke...)
	doc.Line(0, figure.BodyBottom, -figure.LegSpan, figure.LegBottom, stroke...)
	doc.Line(0, figure.BodyBottom, figure.LegSpan, figure.LegBottom, stroke...)
	doc.Text(0, figure.LabelY, g.Label,
		`class="coord-label"`,
		`text-anchor="middle"`,
		fmt.Sprintf(`font-size="%dpx"`, figure.LabelFontSize),
		attr("fill", g.Color))
	doc.Gend()
}

// Inline strips the XML declaration so the document can be embedded in HTML.
func Inline(doc []byte) []byte {
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		return doc[i:]
	}
	return doc
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}
