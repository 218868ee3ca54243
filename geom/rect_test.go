package geom

import "testing"

var containsTests = []struct {
	r   Rect
	p   Vec2u
	out bool
}{
	{Rect{0, 0, 10, 10}, Vec2u{0, 0}, true},
	{Rect{0, 0, 10, 10}, Vec2u{9, 9}, true},
	{Rect{0, 0, 10, 10}, Vec2u{10, 9}, false},
	{Rect{0, 0, 10, 10}, Vec2u{9, 10}, false},
	{Rect{5, 5, 10, 10}, Vec2u{4, 5}, false},
	{Rect{5, 5, 10, 10}, Vec2u{5, 5}, true},
	{Rect{5, 5, 0, 0}, Vec2u{5, 5}, false},
}

func TestRectContainsPoint(t *testing.T) {
	for _, test := range containsTests {
		if got := test.r.ContainsPoint(test.p); got != test.out {
			t.Errorf("%+v.ContainsPoint(%+v)=%v; expected %v", test.r, test.p, got, test.out)
		}
	}
}

func TestSplitHeightPartitions(t *testing.T) {
	for _, h := range []uint32{1, 2, 7, 128, 719} {
		r := Rect{3, 11, 40, h}
		bottom, top, dist := r.SplitHeight()
		if bottom.H+top.H != r.H {
			t.Errorf("h=%d: heights %d+%d != %d", h, bottom.H, top.H, r.H)
		}
		if top.Y != bottom.Y+bottom.H {
			t.Errorf("h=%d: top.Y=%d, expected %d", h, top.Y, bottom.Y+bottom.H)
		}
		if dist != top.Y {
			t.Errorf("h=%d: distance %d, expected %d", h, dist, top.Y)
		}
		if bottom.X != r.X || bottom.W != r.W || top.X != r.X || top.W != r.W {
			t.Errorf("h=%d: widths changed: %+v %+v", h, bottom, top)
		}
	}
}

func TestSplitWidthPartitions(t *testing.T) {
	for _, w := range []uint32{1, 2, 9, 1280} {
		r := Rect{0, 0, w, 10}
		left, right, dist := r.SplitWidth()
		if left.W+right.W != r.W {
			t.Errorf("w=%d: widths %d+%d != %d", w, left.W, right.W, r.W)
		}
		if right.X != left.X+left.W || dist != right.X {
			t.Errorf("w=%d: right.X=%d dist=%d", w, right.X, dist)
		}
	}
}

func TestInset(t *testing.T) {
	r := Rect{10, 10, 20, 8}
	in := r.Inset(2)
	if (in != Rect{12, 12, 16, 4}) {
		t.Errorf("Inset(2)=%+v", in)
	}
	if zero := (Rect{0, 0, 4, 4}).Inset(2); zero.W != 0 || zero.H != 0 {
		t.Errorf("Inset to zero=%+v", zero)
	}
}
