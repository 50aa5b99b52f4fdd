// Package input turns raw device events into game intents.
package input

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Focus describes which element held keyboard focus when an event arrived.
type Focus int

const (
	FocusGame      Focus = iota // the playfield or page body
	FocusTextField              // a text input, textarea or editable element
)

// KeyEvent is a keyboard event as seen by the host.
type KeyEvent struct {
	Key   string // normalized key name: "left", "a", " ", "enter"
	Up    bool   // true for key release
	Focus Focus
}

// Binding maps a key to an intent. Held bindings stay active until release.
type Binding struct {
	Action core.Action
	Held   bool
}

// Result reports what the adapter did with an event.
type Result struct {
	Action core.Action
	// PreventDefault is true only for recognized controls outside text fields;
	// the host must suppress its default behaviour (scrolling) in that case.
	PreventDefault bool
}

// DefaultBindings returns arrow/WASD movement plus space/enter actions.
func DefaultBindings() map[string]Binding {
	return map[string]Binding{
		"left":  {Action: core.ActionLeft, Held: true},
		"a":     {Action: core.ActionLeft, Held: true},
		"right": {Action: core.ActionRight, Held: true},
		"d":     {Action: core.ActionRight, Held: true},
		"up":    {Action: core.ActionUp, Held: true},
		"w":     {Action: core.ActionUp, Held: true},
		"down":  {Action: core.ActionDown, Held: true},
		"s":     {Action: core.ActionDown, Held: true},
		" ":     {Action: core.ActionJump},
		"space": {Action: core.ActionJump},
		"f":     {Action: core.ActionShoot},
		"enter": {Action: core.ActionConfirm},
		"p":     {Action: core.ActionPause},
		"r":     {Action: core.ActionRestart},
	}
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBindings replaces the default key table.
func WithBindings(b map[string]Binding) Option {
	return func(a *Adapter) { a.bindings = b }
}

// WithoutHeldKeys treats every binding as one-shot. Terminal hosts use it
// because they never see key releases.
func WithoutHeldKeys() Option {
	return func(a *Adapter) { a.heldKeys = false }
}

// WithLogger sets the adapter logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// Adapter accumulates intents between ticks. Hosts feed it events; the
// session drains it with Frame once per tick.
type Adapter struct {
	bindings map[string]Binding
	heldKeys bool
	logger   *log.Logger

	mu      sync.Mutex
	held    map[core.Action]bool
	pending core.InputFrame
	touch   *touchStart
}

type touchStart struct{ x, y float64 }

// NewAdapter creates an adapter with DefaultBindings.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		bindings: DefaultBindings(),
		heldKeys: true,
		held:     make(map[core.Action]bool),
		pending:  core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	return a
}

// HandleKey processes one keyboard event. Events typed into text fields are
// ignored and never prevented.
func (a *Adapter) HandleKey(ev KeyEvent) Result {
	if ev.Focus == FocusTextField {
		return Result{}
	}
	b, ok := a.bindings[strings.ToLower(ev.Key)]
	if !ok {
		return Result{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	held := b.Held && a.heldKeys
	switch {
	case ev.Up && held:
		delete(a.held, b.Action)
	case ev.Up:
	default:
		a.pending.Set(b.Action)
		if held {
			a.held[b.Action] = true
		}
	}
	return Result{Action: b.Action, PreventDefault: true}
}

// HandlePointer records a pointer position given in display pixels for a
// surface displayWidth pixels wide, scaled to logical units.
func (a *Adapter) HandlePointer(displayX, displayWidth float64) {
	if displayWidth <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending.Point(displayX * core.LogicalWidth / displayWidth)
}

// HandleChoice records an option choice such as a quiz answer or board cell.
func (a *Adapter) HandleChoice(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending.Choose(index)
}

// TouchStart remembers where a touch began.
func (a *Adapter) TouchStart(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch = &touchStart{x: x, y: y}
}

// TouchEnd resolves the gesture begun by TouchStart into a swipe intent.
// Returns false when there was no start or the swipe was too short.
func (a *Adapter) TouchEnd(x, y float64) (core.Action, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := a.touch
	a.touch = nil
	if start == nil {
		return core.ActionNone, false
	}
	action, ok := Swipe(x-start.x, y-start.y)
	if !ok {
		a.logger.Debug("swipe ignored", "dx", x-start.x, "dy", y-start.y)
		return core.ActionNone, false
	}
	a.pending.Set(action)
	return action, true
}

// Frame returns the intents gathered since the previous call plus all held
// keys, and starts a new accumulation window.
func (a *Adapter) Frame() core.InputFrame {
	a.mu.Lock()
	defer a.mu.Unlock()

	frame := a.pending.Clone()
	for action := range a.held {
		frame.Set(action)
	}
	a.pending.Clear()
	return frame
}

// Release drops all held keys, e.g. when the window loses focus.
func (a *Adapter) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k := range a.held {
		delete(a.held, k)
	}
}
