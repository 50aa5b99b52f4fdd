package core

import "maps"

// Action is a semantic intent. Games react to actions, never to raw keys or
// pointer coordinates; the input adapter does the translation.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionShoot
	ActionSelect  // an option index was chosen, see InputFrame.Choices
	ActionConfirm // enter on a prompt
	ActionRestart // request a new run once the current one has ended
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionJump:    "jump",
	ActionShoot:   "shoot",
	ActionSelect:  "select",
	ActionConfirm: "confirm",
	ActionRestart: "restart",
	ActionPause:   "pause",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// InputFrame holds the intents gathered between two ticks.
// The session hands one frame to the game per tick and then clears it.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Choices lists option indices chosen this frame, in arrival order.
	Choices []int

	// PointerX is the pointer position in logical units; valid when HasPointer.
	PointerX   float64
	HasPointer bool
}

func NewInputFrame() InputFrame {
	return InputFrame{Actions: map[Action]bool{}}
}

func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Choose records an option choice and marks ActionSelect.
func (f *InputFrame) Choose(index int) {
	f.Set(ActionSelect)
	f.Choices = append(f.Choices, index)
}

// Point records the latest pointer position.
func (f *InputFrame) Point(x float64) {
	f.PointerX = x
	f.HasPointer = true
}

// Has reports whether a was triggered. A nil map reads as empty.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether the frame carries no intent at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Choices) == 0 && !f.HasPointer
}

// Merge folds other into f; later choices and pointer positions win.
func (f *InputFrame) Merge(other InputFrame) {
	for k, v := range other.Actions {
		if v {
			f.Set(k)
		}
	}
	f.Choices = append(f.Choices, other.Choices...)
	if other.HasPointer {
		f.Point(other.PointerX)
	}
}

// Clear empties the frame in place, keeping its allocations.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Choices = f.Choices[:0]
	f.PointerX, f.HasPointer = 0, false
}

// Clone returns a deep copy that shares nothing with f.
func (f InputFrame) Clone() InputFrame {
	out := NewInputFrame()
	maps.Copy(out.Actions, f.Actions)
	if len(f.Choices) > 0 {
		out.Choices = append([]int(nil), f.Choices...)
	}
	out.PointerX, out.HasPointer = f.PointerX, f.HasPointer
	return out
}
