package food

import (
	"testing"

	"github.com/hoshinonyaruko/snake-arena/structs"
)

func TestRollWeighting(t *testing.T) {
	tests := []struct {
		r    float64
		want Category
	}{
		{0.99, Death},
		{0.981, Death},
		{0.98, Shrink},
		{0.95, Shrink},
		{0.93, Poison},
		{0.85, Poison},
		{0.80, Golden},
		{0.70, Golden},
		{0.65, Normal},
		{0.5, Normal},
		{0, Normal},
	}
	for _, tt := range tests {
		if got := Roll(tt.r); got != tt.want {
			t.Errorf("Roll(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestNewUsesCategoryConstants(t *testing.T) {
	tests := []struct {
		category Category
		value    int
		radius   float64
		lifetime float64
	}{
		{Normal, 5, 8, 0},
		{Golden, 25, 12, 10},
		{Poison, -10, 12, 10},
		{Death, 0, 14, 5},
		{Shrink, 50, 10, 5},
	}
	for _, tt := range tests {
		f := New(tt.category, structs.Vector2{X: 1, Y: 2})
		if f.Value != tt.value || f.Radius != tt.radius || f.Lifetime != tt.lifetime {
			t.Errorf("%s: got value=%d radius=%v lifetime=%v", tt.category, f.Value, f.Radius, f.Lifetime)
		}
		if f.Color == "" {
			t.Errorf("%s: missing color", tt.category)
		}
	}
	if f := New("mystery", structs.Vector2{}); f.Category != Normal {
		t.Errorf("unknown category should fall back to normal, got %s", f.Category)
	}
}

func TestAdvanceExpires(t *testing.T) {
	f := New(Death, structs.Vector2{})
	for i := 0; i < 4; i++ {
		if f.Advance(1) {
			t.Fatalf("expired early at age %v", f.Age)
		}
	}
	if got := f.Remaining(); got != 1 {
		t.Errorf("remaining = %v, want 1", got)
	}
	if !f.Advance(1) {
		t.Errorf("expected expiry at age %v", f.Age)
	}

	n := New(Normal, structs.Vector2{})
	if n.Advance(1000) || n.Expires() {
		t.Error("normal food never expires")
	}
	if n.Remaining() != -1 {
		t.Errorf("remaining = %v, want -1", n.Remaining())
	}
}
