package structs

import (
	"math"
	"testing"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vector2{X: 3, Y: 4}
	b := Vector2{X: 1, Y: -2}

	if got := a.Add(b); !got.Equals(Vector2{X: 4, Y: 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !got.Equals(Vector2{X: 2, Y: 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); !got.Equals(Vector2{X: 6, Y: 8}) {
		t.Errorf("Scale = %v", got)
	}
	if a.Mag() != 5 {
		t.Errorf("Mag = %v", a.Mag())
	}
	if d := a.Distance(Vector2{}); d != 5 {
		t.Errorf("Distance = %v", d)
	}
	if got := a.Lerp(Vector2{X: 5, Y: 8}, 0.5); !got.Equals(Vector2{X: 4, Y: 6}) {
		t.Errorf("Lerp = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	n := Vector2{X: 3, Y: 4}.Normalize()
	if math.Abs(n.Mag()-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v", n.Mag())
	}
	if z := (Vector2{}).Normalize(); !z.Equals(Vector2{}) {
		t.Errorf("zero vector normalize = %v", z)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vector2{X: 1, Y: 2}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vector2{X: math.NaN()}).IsFinite() || (Vector2{Y: math.Inf(1)}).IsFinite() {
		t.Error("non-finite vector reported finite")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	if !r.Contains(Vector2{X: 10, Y: 60}) || r.Contains(Vector2{X: 9, Y: 20}) {
		t.Error("Contains boundary check failed")
	}
}
