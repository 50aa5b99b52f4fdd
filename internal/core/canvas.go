package core

import "math"

// OpKind identifies a drawing primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillArc
	OpText
)

// DrawOp is one recorded drawing primitive in logical units.
type DrawOp struct {
	Kind  OpKind
	X, Y  float64 // Top-left for rects and text, center for arcs
	W, H  float64 // Rect size; W is the radius for arcs
	Color Color
	Text  string
}

// Canvas is a fixed-resolution logical drawing surface.
// Games issue fill-rectangle, arc and text primitives against it; hosts decide
// how to present the recorded operations.
type Canvas struct {
	width  float64
	height float64
	ops    []DrawOp
}

// NewCanvas creates a canvas with the given logical size.
func NewCanvas(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

// Width returns the logical width.
func (c *Canvas) Width() float64 { return c.width }

// Height returns the logical height.
func (c *Canvas) Height() float64 { return c.height }

// Clear drops every recorded operation.
func (c *Canvas) Clear() {
	c.ops = c.ops[:0]
}

// FillRect records a filled rectangle.
func (c *Canvas) FillRect(r RectF, color Color) {
	c.ops = append(c.ops, DrawOp{Kind: OpFillRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Color: color})
}

// FillArc records a filled circle.
func (c *Canvas) FillArc(circle Circle, color Color) {
	c.ops = append(c.ops, DrawOp{Kind: OpFillArc, X: circle.X, Y: circle.Y, W: circle.R, Color: color})
}

// Text records a text label anchored at its top-left corner.
func (c *Canvas) Text(x, y float64, text string, color Color) {
	c.ops = append(c.ops, DrawOp{Kind: OpText, X: x, Y: y, Text: text, Color: color})
}

// Ops returns the operations recorded since the last Clear.
func (c *Canvas) Ops() []DrawOp {
	return c.ops
}

// Rasterize scales the canvas onto a character screen.
// Each cell is filled by the last primitive covering its center.
func (c *Canvas) Rasterize(dst *Screen) {
	if dst.Width() == 0 || dst.Height() == 0 || c.width == 0 || c.height == 0 {
		return
	}
	sx := float64(dst.Width()) / c.width
	sy := float64(dst.Height()) / c.height

	for _, op := range c.ops {
		switch op.Kind {
		case OpFillRect:
			x0 := int(math.Floor(op.X * sx))
			y0 := int(math.Floor(op.Y * sy))
			x1 := int(math.Ceil((op.X + op.W) * sx))
			y1 := int(math.Ceil((op.Y + op.H) * sy))
			if x1 == x0 {
				x1++
			}
			if y1 == y0 {
				y1++
			}
			dst.DrawRect(NewRect(x0, y0, x1-x0, y1-y0), '█', op.Color)
		case OpFillArc:
			circle := Circle{X: op.X, Y: op.Y, R: op.W}
			b := circle.Bounds()
			x0, y0 := int(math.Floor(b.X*sx)), int(math.Floor(b.Y*sy))
			x1, y1 := int(math.Ceil(b.Right()*sx)), int(math.Ceil(b.Bottom()*sy))
			drawn := false
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					cx := (float64(x) + 0.5) / sx
					cy := (float64(y) + 0.5) / sy
					dx, dy := cx-circle.X, cy-circle.Y
					if dx*dx+dy*dy <= circle.R*circle.R {
						dst.SetColored(x, y, '●', op.Color)
						drawn = true
					}
				}
			}
			if !drawn {
				dst.SetColored(int(circle.X*sx), int(circle.Y*sy), '●', op.Color)
			}
		case OpText:
			dst.DrawText(int(op.X*sx), int(op.Y*sy), op.Text, op.Color)
		}
	}
}
