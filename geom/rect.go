package geom

// Vec2u is a point in pixels, origin bottom-left.
type Vec2u struct {
	X, Y uint32
}

type Extent2u struct {
	W, H uint32
}

// Rect is a pixel rectangle, origin bottom-left.
type Rect struct {
	X, Y, W, H uint32
}

func NewRect(x, y, w, h uint32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// ContainsPoint is left/bottom-inclusive and right/top-exclusive, so
// that adjacent rectangles never both claim a shared boundary point.
func (r Rect) ContainsPoint(p Vec2u) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Right() uint32 {
	return r.X + r.W
}

func (r Rect) Top() uint32 {
	return r.Y + r.H
}

func (r Rect) Area() uint64 {
	return uint64(r.W) * uint64(r.H)
}

// Inset shrinks the rectangle by px on every side, clamping at zero size.
func (r Rect) Inset(px uint32) Rect {
	if r.W <= 2*px || r.H <= 2*px {
		return Rect{X: r.X, Y: r.Y, W: 0, H: 0}
	}
	return Rect{X: r.X + px, Y: r.Y + px, W: r.W - 2*px, H: r.H - 2*px}
}

// SplitHeight divides the rectangle into bottom and top halves and
// returns the divider's distance from the bottom edge of the parent,
// in absolute pixels. The bottom half rounds down on odd heights.
func (r Rect) SplitHeight() (bottom, top Rect, distancePx uint32) {
	bottom = r
	top = r
	bottom.H = r.H / 2
	top.H = r.H - bottom.H
	top.Y = r.Y + bottom.H
	return bottom, top, top.Y
}

// SplitWidth divides the rectangle into left and right halves, same
// rounding convention as SplitHeight.
func (r Rect) SplitWidth() (left, right Rect, distancePx uint32) {
	left = r
	right = r
	left.W = r.W / 2
	right.W = r.W - left.W
	right.X = r.X + left.W
	return left, right, right.X
}
