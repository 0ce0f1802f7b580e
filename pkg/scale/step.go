package scale

import "fmt"

// Pair names the attribute indices that drive x and y.
type Pair struct {
	X, Y int
}

// pairs is the fixed, ordered set of layouts a session cycles through.
var pairs = [...]Pair{
	{0, 1},
	{2, 3},
	{4, 5},
}

// StepCount is the number of steps in the cycle.
const StepCount = len(pairs)

// Step identifies the active attribute pair.
type Step int

// Next returns the following step, wrapping around after the last.
func (s Step) Next() Step {
	return (s.mustValid() + 1) % Step(StepCount)
}

// Pair returns the attribute indices for s.
// It panics if s is outside [0, StepCount).
func (s Step) Pair() Pair {
	return pairs[s.mustValid()]
}

// Valid reports whether s names one of the fixed pairs.
func (s Step) Valid() bool {
	return s >= 0 && int(s) < StepCount
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	p := pairs[s]
	return fmt.Sprintf("x%d/y%d", p.X/2+1, p.Y/2+1)
}

func (s Step) mustValid() Step {
	if !s.Valid() {
		panic(fmt.Sprintf("scale: invalid step %d", int(s)))
	}
	return s
}
