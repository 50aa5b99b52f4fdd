// Package core holds the types shared by the engine, the games and the
// hosts: geometry, the logical canvas, intents and the terminal screen.
// It imports nothing outside the standard library so game logic stays
// testable without a terminal.
package core

// Rect is a cell rectangle on a terminal Screen.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectF is an axis-aligned box in logical playfield units.
// Every canvas game collides through it.
type RectF struct {
	X, Y float64 // top-left
	W, H float64
}

func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

func (r RectF) Right() float64  { return r.X + r.W }
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Intersects reports strict overlap; boxes that only touch do not collide.
func (r RectF) Intersects(other RectF) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r RectF) Translate(dx, dy float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ClampInto shifts r until it lies inside bounds. A box larger than bounds
// is pinned to the top-left corner.
func (r RectF) ClampInto(bounds RectF) RectF {
	if r.W > bounds.W {
		r.X = bounds.X
	} else {
		r.X = ClampF(r.X, bounds.X, bounds.Right()-r.W)
	}
	if r.H > bounds.H {
		r.Y = bounds.Y
	} else {
		r.Y = ClampF(r.Y, bounds.Y, bounds.Bottom()-r.H)
	}
	return r
}

// Circle is a round actor such as a ball.
type Circle struct {
	X, Y float64 // center
	R    float64
}

func (c Circle) Bounds() RectF {
	return RectF{X: c.X - c.R, Y: c.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

// IntersectsRect tests the point of r nearest to the circle's center.
func (c Circle) IntersectsRect(r RectF) bool {
	dx := c.X - ClampF(c.X, r.X, r.Right())
	dy := c.Y - ClampF(c.Y, r.Y, r.Bottom())
	return dx*dx+dy*dy < c.R*c.R
}

// ClampF limits v to [lo, hi]. lo wins when the range is empty.
func ClampF(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
