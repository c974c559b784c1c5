package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/el2nil/calculator"
)

func square() *calculator.Engine {
	e := calculator.New()
	e.SetOperandVar("M")
	e.PerformOperation("x²")
	return e
}

func TestSample(t *testing.T) {
	e := square()
	pts, err := Sample(e, DefaultVariable, -2, 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{{-2, 4, true}, {-1, 1, true}, {0, 0, true}, {1, 1, true}, {2, 4, true}}
	if len(pts) != len(want) {
		t.Fatalf("want %d points, got %d", len(want), len(pts))
	}
	for i, p := range pts {
		if p != want[i] {
			t.Errorf("point %d: want %+v, got %+v", i, want[i], p)
		}
	}
	if _, ok := e.Variable("M"); ok {
		t.Error("sampling bound M in the original engine")
	}
	if r := e.Result(); r != 0 {
		t.Errorf("sampling changed the original result to %g", r)
	}
}

func TestSampleGaps(t *testing.T) {
	e := calculator.New()
	e.SetOperandVar("M")
	e.PerformOperation("x⁻¹")
	pts, err := Sample(e, "M", -1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	oks := []bool{true, false, true}
	for i, p := range pts {
		if p.OK != oks[i] {
			t.Errorf("point %d (x=%g, y=%g): want OK %t", i, p.X, p.Y, oks[i])
		}
	}

	e = calculator.New()
	e.SetOperandVar("M")
	e.PerformOperation("√")
	pts, err = Sample(e, "M", -4, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if pts[0].OK || !pts[1].OK || !pts[2].OK || pts[2].Y != 2 {
		t.Errorf("sqrt samples %+v", pts)
	}
}

func TestNotGraphable(t *testing.T) {
	cases := []struct {
		name string
		e    func() *calculator.Engine
	}{
		{"empty", func() *calculator.Engine { return calculator.New() }},
		{"partial", func() *calculator.Engine {
			e := calculator.New()
			e.SetOperandVar("M")
			e.PerformOperation("+")
			return e
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Sample(c.e(), "M", 0, 1, 2); !errors.Is(err, ErrNotGraphable) {
				t.Errorf("want ErrNotGraphable, got %v", err)
			}
		})
	}
}

func TestSampleCount(t *testing.T) {
	if _, err := Sample(square(), "M", 0, 1, 1); err == nil {
		t.Error("sampled with one point")
	}
	pts, err := Sample(square(), "M", 0, 0.3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if x := pts[len(pts)-1].X; x != 0.3 {
		t.Errorf("last x %g, want exactly 0.3", x)
	}
}

func TestFunc(t *testing.T) {
	e := calculator.New()
	e.SetOperand(2)
	e.PerformOperation("×")
	e.SetOperandVar("x")
	e.PerformOperation("+")
	e.SetOperand(1)
	e.PerformOperation("=")
	f, err := Func(e, "x")
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-1, 0, 0.5, 10} {
		y, ok := f(x)
		if !ok || y != 2*x+1 {
			t.Errorf("f(%g) = %g, %t", x, y, ok)
		}
	}
	if y, ok := f(math.Inf(1)); ok {
		t.Errorf("f(inf) = %g reported finite", y)
	}
}
