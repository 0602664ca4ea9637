package input

import (
	"math"
	"testing"

	"github.com/hoshinonyaruko/snake-arena/structs"
)

func TestTrackerMoveAndRelease(t *testing.T) {
	tr := NewTracker(400, 300)
	if tr.Pressing() || tr.UsingTouch() {
		t.Fatal("fresh tracker should not be pressing")
	}
	if p := tr.Pointer(); !p.Equals(structs.Vector2{X: 400, Y: 300}) {
		t.Errorf("initial pointer = %v", p)
	}

	tr.Move(10, 20, true)
	if p := tr.Pointer(); !p.Equals(structs.Vector2{X: 10, Y: 20}) || !tr.Pressing() || !tr.UsingTouch() {
		t.Errorf("after move: %v pressing=%v touch=%v", p, tr.Pressing(), tr.UsingTouch())
	}

	tr.Release()
	if tr.Pressing() {
		t.Error("expected release")
	}
	if p := tr.Pointer(); !p.Equals(structs.Vector2{X: 10, Y: 20}) {
		t.Errorf("release should keep the last position, got %v", p)
	}
}

func TestTrackerIgnoresNonFinite(t *testing.T) {
	tr := NewTracker(1, 1)
	tr.Move(math.NaN(), 5, false)
	tr.Move(5, math.Inf(-1), false)
	if p := tr.Pointer(); !p.Equals(structs.Vector2{X: 1, Y: 1}) {
		t.Errorf("pointer = %v", p)
	}
}

func TestTrackerApply(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.Apply(structs.Pointer{X: 5, Y: 6, Pressing: true})
	if !tr.Pressing() || tr.UsingTouch() {
		t.Error("mouse move should press without touch")
	}
	tr.Apply(structs.Pointer{Touch: true})
	if tr.Pressing() || !tr.UsingTouch() {
		t.Error("touch end should release")
	}
}
