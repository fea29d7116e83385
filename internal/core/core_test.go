package core

import (
	"math"
	"testing"
)

func TestVecNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero stays zero", V(0, 0), V(0, 0)},
		{"axis aligned", V(0, 5), V(0, 1)},
		{"3-4-5", V(3, 4), V(0.6, 0.8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalized()
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("Normalized() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestVecDist(t *testing.T) {
	if d := V(1, 1).Dist(V(4, 5)); d != 5 {
		t.Errorf("Dist() = %f, expected 5", d)
	}
}

func TestClampF(t *testing.T) {
	if ClampF(-1, 0, 1) != 0 || ClampF(2, 0, 1) != 1 || ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF did not restrict to [0, 1]")
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, 'X', ColorRed)
	if cell := s.GetCell(3, 2); cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 2) = %+v, expected red X", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorDefault)

	if got := s.String(); got != "    abc    " {
		t.Errorf("String() = %q, expected centered text", got)
	}
}

func TestInputAxis(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionLeft)
	in.Set(ActionDown)

	dx, dy := in.Axis()
	if dx != -1 || dy != 1 {
		t.Errorf("Axis() = (%f, %f), expected (-1, 1)", dx, dy)
	}

	in.Clear()
	if in.Has(ActionLeft) {
		t.Error("Clear should remove all actions")
	}
}
