package scale

import (
	"math"
	"testing"

	"github.com/matzehuels/stickfigures/pkg/entity"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func sample() entity.Collection {
	return entity.Collection{
		{ID: "1", Vars: entity.Vars{3, -2, 100, 7, 0.5, 9}},
		{ID: "2", Vars: entity.Vars{1, 4, 250, 7, 0.25, -9}},
		{ID: "3", Vars: entity.Vars{8, 0, 175, 7, 1, 0}},
		{ID: "4", Vars: entity.Vars{5, 11, 120, 7, 0.75, 3}},
	}
}

func TestStepCycle(t *testing.T) {
	for s := Step(0); int(s) < StepCount; s++ {
		if got := s.Next().Next().Next(); got != s {
			t.Errorf("Step(%d) advanced 3 times = %d", s, got)
		}
	}
	if Step(2).Next() != 0 {
		t.Errorf("Step(2).Next() = %d, want 0", Step(2).Next())
	}
}

func TestStepPairs(t *testing.T) {
	want := []Pair{{0, 1}, {2, 3}, {4, 5}}
	for i, p := range want {
		if got := Step(i).Pair(); got != p {
			t.Errorf("Step(%d).Pair() = %v, want %v", i, got, p)
		}
	}
}

func TestInvalidStepPanics(t *testing.T) {
	for _, s := range []Step{-1, 3, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Step(%d).Pair() did not panic", s)
				}
			}()
			_ = s.Pair()
		}()
	}
}

func TestBuildBoundsAllSteps(t *testing.T) {
	c := sample()
	canvas := NewCanvas(800, 600)

	for s := Step(0); int(s) < StepCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			sc := Build(c, s, canvas)
			p := s.Pair()

			xr, yr := Extent(c, p.X), Extent(c, p.Y)

			if !sc.X.Degenerate() {
				if got := sc.X.Map(xr[0]); !near(got, 50) {
					t.Errorf("x(min) = %v, want 50", got)
				}
				if got := sc.X.Map(xr[1]); !near(got, 750) {
					t.Errorf("x(max) = %v, want 750", got)
				}
			}
			if !sc.Y.Degenerate() {
				if got := sc.Y.Map(yr[0]); !near(got, 550) {
					t.Errorf("y(min) = %v, want 550", got)
				}
				if got := sc.Y.Map(yr[1]); !near(got, 50) {
					t.Errorf("y(max) = %v, want 50", got)
				}
			}

			// Monotonic over the observed values: x increasing, y decreasing.
			for _, a := range c {
				for _, b := range c {
					if a.Vars[p.X] < b.Vars[p.X] && !(sc.X.Map(a.Vars[p.X]) < sc.X.Map(b.Vars[p.X])) {
						t.Errorf("x not increasing between %v and %v", a.Vars[p.X], b.Vars[p.X])
					}
					if a.Vars[p.Y] < b.Vars[p.Y] && !(sc.Y.Map(a.Vars[p.Y]) > sc.Y.Map(b.Vars[p.Y])) {
						t.Errorf("y not decreasing between %v and %v", a.Vars[p.Y], b.Vars[p.Y])
					}
				}
			}
		})
	}
}

func TestBuildEqualExtentMapsToMidpoint(t *testing.T) {
	c := sample()
	// Step 1 uses attribute 3 for y, which is 7 everywhere.
	sc := Build(c, 1, NewCanvas(800, 600))

	if !sc.Y.Degenerate() {
		t.Fatalf("y domain = %v, want degenerate", sc.Y.Domain)
	}
	if got := sc.Y.Map(7); !near(got, 300) {
		t.Errorf("y(7) = %v, want midpoint 300", got)
	}
	if got := sc.Y.Map(-100); !near(got, 300) {
		t.Errorf("y(-100) = %v, want midpoint 300", got)
	}
}

func TestBuildSingleEntity(t *testing.T) {
	c := entity.Collection{{ID: "only", Vars: entity.Vars{1, 2, 3, 4, 5, 6}}}
	x, y := Build(c, 0, NewCanvas(200, 100)).Point(c[0].Vars)
	if !near(x, 100) || !near(y, 50) {
		t.Errorf("Point() = (%v, %v), want (100, 50)", x, y)
	}
}

func TestBuildScenario(t *testing.T) {
	c := entity.Collection{
		{ID: "A", Vars: entity.Vars{0, 0, 10, 10, 20, 20}},
		{ID: "B", Vars: entity.Vars{10, 10, 0, 0, 30, 30}},
	}
	canvas := NewCanvas(1000, 800)
	sc := Build(c, 0, canvas)

	ax, ay := sc.Point(c[0].Vars)
	bx, by := sc.Point(c[1].Vars)

	// A bottom-left, B top-right.
	if !near(ax, 50) || !near(ay, 750) {
		t.Errorf("A = (%v, %v), want (50, 750)", ax, ay)
	}
	if !near(bx, 950) || !near(by, 50) {
		t.Errorf("B = (%v, %v), want (950, 50)", bx, by)
	}

	r := entity.Rotate(c)
	sc = Build(r, 0, canvas)
	ax2, ay2 := sc.Point(r[0].Vars)
	bx2, by2 := sc.Point(r[1].Vars)
	if !near(ax2, bx) || !near(ay2, by) || !near(bx2, ax) || !near(by2, ay) {
		t.Errorf("rotate did not swap positions: A=(%v,%v) B=(%v,%v)", ax2, ay2, bx2, by2)
	}
}

func TestExtent(t *testing.T) {
	c := sample()
	if got := Extent(c, 0); got != [2]float64{1, 8} {
		t.Errorf("Extent(0) = %v, want [1 8]", got)
	}
	if got := Extent(c, 5); got != [2]float64{-9, 9} {
		t.Errorf("Extent(5) = %v, want [-9 9]", got)
	}
	if got := Extent(nil, 0); got != [2]float64{} {
		t.Errorf("Extent(nil) = %v, want zero", got)
	}
}

func TestStepString(t *testing.T) {
	if got := Step(1).String(); got != "x2/y2" {
		t.Errorf("Step(1).String() = %q, want x2/y2", got)
	}
	if got := Step(9).String(); got != "Step(9)" {
		t.Errorf("Step(9).String() = %q", got)
	}
}
