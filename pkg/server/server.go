// Package server hosts a browser session over HTTP.
//
// The page at "/" shows the plot as inline SVG next to the data table. A
// small script posts glyph clicks and key presses back to the API and
// animates glyphs to the targets of the frame it gets back. All handlers
// share one [session.Session] and run one at a time.
//
// Routes:
//
//	GET  /                               page
//	GET  /frame.svg                      current frame as standalone SVG
//	GET  /healthz                        liveness
//	GET  /api/frame                      current frame as JSON
//	POST /api/step                       advance the attribute pair
//	POST /api/key                        {"key": "n"}
//	POST /api/glyphs/{handle}/activate   click a glyph
package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/httputil"
	"github.com/matzehuels/stickfigures/pkg/render/sink"
	"github.com/matzehuels/stickfigures/pkg/session"
)

const (
	apiBase      = "/api"
	maxBodyBytes = 1 << 10
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for handler failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock sets the time source used to snapshot frames.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// Server serializes HTTP access to one session.
type Server struct {
	mu     sync.Mutex
	sess   *session.Session
	now    func() time.Time
	logger *log.Logger
	title  string
}

// New returns a server for sess.
func New(sess *session.Session, opts ...Option) *Server {
	s := &Server{
		sess:   sess,
		now:    time.Now,
		logger: log.New(io.Discard),
		title:  "stickfigures",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Observe)

	r.Get("/", s.handlePage)
	r.Get("/frame.svg", s.handleFrameSVG)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = httputil.WriteRaw(w, http.StatusOK, "text/plain; charset=utf-8", []byte("ok\n"))
	})

	r.Route(apiBase, func(r chi.Router) {
		r.Get("/frame", s.handleFrame)
		r.Post("/step", s.handleStep)
		r.Post("/key", s.handleKey)
		r.Post("/glyphs/{handle}/activate", s.handleActivate)
	})
	return r
}

// withSession runs fn while holding the session lock.
func (s *Server) withSession(fn func(*session.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sess)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.writeFrame(w, r, nil)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	s.writeFrame(w, r, func(sess *session.Session) error {
		sess.AdvanceStep()
		return nil
	})
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode key request"))
		return
	}
	s.writeFrame(w, r, func(sess *session.Session) error {
		sess.HandleKey(req.Key)
		return nil
	})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	s.writeFrame(w, r, func(sess *session.Session) error {
		if !sess.Activate(handle) {
			return errors.New(errors.ErrCodeNotFound, "no glyph with handle %q", handle)
		}
		return nil
	})
}

// writeFrame applies fn, if any, and replies with the resulting frame.
func (s *Server) writeFrame(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	var (
		body []byte
		err  error
	)
	s.withSession(func(sess *session.Session) {
		if fn != nil {
			if err = fn(sess); err != nil {
				return
			}
		}
		body, err = sink.RenderJSON(sess.Frame(s.now()), sess.Canvas())
	})
	if err != nil {
		if status := httputil.WriteError(w, err); status >= http.StatusInternalServerError {
			s.logger.Error("frame request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		}
		return
	}
	_ = httputil.WriteRaw(w, http.StatusOK, "application/json", body)
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, _ *http.Request) {
	var svg []byte
	s.withSession(func(sess *session.Session) {
		svg = sink.RenderSVG(sess.Frame(s.now()), sess.Canvas(), sink.WithTitle(s.title))
	})
	_ = httputil.WriteRaw(w, http.StatusOK, "image/svg+xml", svg)
}

type pageData struct {
	Title    string
	StepName string
	Key      string
	SVG      template.HTML
	Table    template.HTML
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		data pageData
		err  error
	)
	s.withSession(func(sess *session.Session) {
		var tbl bytes.Buffer
		if err = sess.Table().WriteHTML(&tbl); err != nil {
			return
		}
		svg := sink.RenderSVG(sess.Frame(s.now()), sess.Canvas(), sink.WithInteraction(apiBase))
		data = pageData{
			Title:    s.title,
			StepName: sess.Step().String(),
			Key:      sess.RotateKey(),
			SVG:      template.HTML(sink.Inline(svg)),
			Table:    template.HTML(tbl.String()),
		}
	})
	if err != nil {
		s.logger.Error("render page", "err", err)
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "render page"))
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page", "path", r.URL.Path, "err", err)
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "render page"))
		return
	}
	_ = httputil.WriteRaw(w, http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
