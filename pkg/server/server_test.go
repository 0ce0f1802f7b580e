package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/render/figure"
	"github.com/matzehuels/stickfigures/pkg/scale"
	"github.com/matzehuels/stickfigures/pkg/session"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type frameResponse struct {
	Step      int    `json:"step"`
	StepLabel string `json:"step_label"`
	Glyphs    []struct {
		Handle  string  `json:"handle"`
		ID      string  `json:"id"`
		Label   string  `json:"label"`
		TargetX float64 `json:"target_x"`
		TargetY float64 `json:"target_y"`
	} `json:"glyphs"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := entity.Collection{
		{ID: "A", Vars: entity.Vars{0, 0, 10, 10, 20, 20}},
		{ID: "B", Vars: entity.Vars{10, 10, 0, 0, 30, 30}},
	}
	clock := func() time.Time { return t0 }
	sess, err := session.New(c, scale.NewCanvas(1000, 800),
		session.WithFigureOptions(figure.WithClock(clock)))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	ts := httptest.NewServer(New(sess, WithClock(clock)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeFrame(t *testing.T, resp *http.Response) frameResponse {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var f frameResponse
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func TestFrame(t *testing.T) {
	ts := newTestServer(t)
	f := decodeFrame(t, do(t, ts, http.MethodGet, "/api/frame", ""))

	if f.Step != 0 || f.StepLabel != "x1/y1" {
		t.Errorf("step = %d %q", f.Step, f.StepLabel)
	}
	if len(f.Glyphs) != 2 {
		t.Fatalf("glyphs = %d, want 2", len(f.Glyphs))
	}
	if g := f.Glyphs[0]; g.ID != "A" || g.TargetX != 50 || g.TargetY != 750 {
		t.Errorf("A = %+v", g)
	}
}

func TestStepCycles(t *testing.T) {
	ts := newTestServer(t)
	for want := 1; want <= 3; want++ {
		f := decodeFrame(t, do(t, ts, http.MethodPost, "/api/step", ""))
		if f.Step != want%3 {
			t.Errorf("after %d posts step = %d, want %d", want, f.Step, want%3)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		aTarget float64
	}{
		{"rotate upper", `{"key":"N"}`, http.StatusOK, 950},
		{"ignored", `{"key":"x"}`, http.StatusOK, 50},
		{"bad body", `{"key":`, http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			resp := do(t, ts, http.MethodPost, "/api/key", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			f := decodeFrame(t, resp)
			if f.Glyphs[0].TargetX != tt.aTarget {
				t.Errorf("A target x = %v, want %v", f.Glyphs[0].TargetX, tt.aTarget)
			}
		})
	}
}

func TestActivate(t *testing.T) {
	ts := newTestServer(t)
	f := decodeFrame(t, do(t, ts, http.MethodGet, "/api/frame", ""))

	got := decodeFrame(t, do(t, ts, http.MethodPost, "/api/glyphs/"+f.Glyphs[1].Handle+"/activate", ""))
	if got.Step != 1 {
		t.Errorf("step = %d, want 1", got.Step)
	}
	if got.Glyphs[0].Label != "(10; 10)" {
		t.Errorf("A label = %q, want (10; 10)", got.Glyphs[0].Label)
	}

	resp := do(t, ts, http.MethodPost, "/api/glyphs/unknown/activate", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown handle status = %d, want 404", resp.StatusCode)
	}
}

func TestPage(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var sb strings.Builder
	if _, err := io.Copy(&sb, resp.Body); err != nil {
		t.Fatal(err)
	}
	body := sb.String()
	for _, want := range []string{"<svg", "<table>", "<th>X1</th>", "<td>A</td>", `class="omino"`, "/api"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "<?xml") {
		t.Error("page embeds an XML declaration")
	}
}

func TestFrameSVGAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, http.MethodGet, "/frame.svg", "")
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp := do(t, ts, http.MethodGet, "/healthz", ""); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	if resp := do(t, ts, http.MethodGet, "/api/step", ""); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/step status = %d, want 405", resp.StatusCode)
	}
}
