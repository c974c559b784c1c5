// Package graph evaluates a calculator program as a function of one of its
// variables.
package graph

import (
	"errors"
	"math"

	"github.com/el2nil/calculator"
)

// DefaultVariable is the variable graphed when none is named.
const DefaultVariable = "M"

// ErrNotGraphable is returned for engines whose description is empty or
// whose last binary operation is still pending.
var ErrNotGraphable = errors.New("nothing to graph")

// Point is a sample of a function. OK is false where the function has no
// finite value, which draws as a gap.
type Point struct {
	X, Y float64
	OK   bool
}

// Func returns the function computed by e's program with respect to a
// variable. The function evaluates a private copy of e, so binding the
// variable never changes e itself.
func Func(e *calculator.Engine, variable string) (func(x float64) (float64, bool), error) {
	if e.Description() == "" || e.IsPartialResult() {
		return nil, ErrNotGraphable
	}
	c := e.Clone()
	return func(x float64) (float64, bool) {
		c.SetVariable(variable, x)
		y := c.Result()
		if c.IsPartialResult() || math.IsNaN(y) || math.IsInf(y, 0) {
			return y, false
		}
		return y, true
	}, nil
}

// Sample evaluates e's program at n evenly spaced values of a variable from
// from to to inclusive. n must be at least 2.
func Sample(e *calculator.Engine, variable string, from, to float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, errors.New("graph: need at least 2 samples")
	}
	f, err := Func(e, variable)
	if err != nil {
		return nil, err
	}
	pts := make([]Point, n)
	step := (to - from) / float64(n-1)
	for i := range pts {
		x := from + float64(i)*step
		if i == n-1 {
			x = to
		}
		y, ok := f(x)
		pts[i] = Point{X: x, Y: y, OK: ok}
	}
	return pts, nil
}
