package input

import (
	"math"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// MinSwipeDistance is the travel, in pixels along the dominant axis, a touch
// must exceed to count as a swipe.
const MinSwipeDistance = 30.0

// Swipe classifies a touch delta. The axis with the larger absolute delta
// decides the direction; ties go to the vertical axis.
func Swipe(dx, dy float64) (core.Action, bool) {
	if math.Abs(dx) > math.Abs(dy) {
		switch {
		case dx > MinSwipeDistance:
			return core.ActionRight, true
		case dx < -MinSwipeDistance:
			return core.ActionLeft, true
		}
		return core.ActionNone, false
	}
	switch {
	case dy > MinSwipeDistance:
		return core.ActionDown, true
	case dy < -MinSwipeDistance:
		return core.ActionUp, true
	}
	return core.ActionNone, false
}
