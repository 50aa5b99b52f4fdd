package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges do not collide",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRectF(0, 0, 20, 20),
			b:        NewRectF(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRectF(0, 0, 10, 10),
			b:        NewRectF(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric: got %v", got)
			}
		})
	}
}

func TestRectFClampInto(t *testing.T) {
	bounds := NewRectF(0, 0, 400, 400)

	tests := []struct {
		name  string
		in    RectF
		wantX float64
		wantY float64
	}{
		{"inside unchanged", NewRectF(100, 100, 20, 20), 100, 100},
		{"left edge", NewRectF(-15, 100, 20, 20), 0, 100},
		{"right edge", NewRectF(395, 100, 20, 20), 380, 100},
		{"bottom right corner", NewRectF(500, 500, 40, 20), 360, 380},
		{"wider than bounds", NewRectF(50, 50, 500, 20), 0, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.ClampInto(bounds)
			if got.X != tc.wantX || got.Y != tc.wantY {
				t.Errorf("ClampInto() = (%v, %v), expected (%v, %v)", got.X, got.Y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	paddle := NewRectF(160, 380, 80, 10)

	tests := []struct {
		name     string
		ball     Circle
		expected bool
	}{
		{"resting on paddle top", Circle{X: 200, Y: 371, R: 10}, true},
		{"just above paddle", Circle{X: 200, Y: 369, R: 10}, false},
		{"beside paddle", Circle{X: 100, Y: 385, R: 10}, false},
		{"corner graze", Circle{X: 155, Y: 375, R: 10}, true},
		{"corner miss", Circle{X: 151, Y: 371, R: 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ball.IntersectsRect(paddle); got != tc.expected {
				t.Errorf("IntersectsRect() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
		{3, 4, 2, 4},
	}

	for _, tc := range tests {
		if got := ClampF(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
