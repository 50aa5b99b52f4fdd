package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Cadence() core.Cadence                { return core.Cadence{Kind: core.CadenceTurn} }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Canvas)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("Exists(stub-a) = false after Register")
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("ID() = %q, expected stub-a", g.ID())
	}

	var found bool
	for _, info := range List() {
		if info.ID == "stub-a" {
			found = true
			if info.Title != "Stub stub-a" {
				t.Errorf("Title = %q, expected %q", info.Title, "Stub stub-a")
			}
			if info.Cadence.Kind != core.CadenceTurn {
				t.Errorf("Cadence = %v, expected turn based", info.Cadence.Kind)
			}
		}
	}
	if !found {
		t.Error("List() does not contain stub-a")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
	if Exists("does-not-exist") {
		t.Error("Exists() reported an unregistered game")
	}
}

func TestLookup(t *testing.T) {
	Register("stub-look", func() Game { return &stubGame{id: "stub-look"} })

	info, ok := Lookup("stub-look")
	if !ok {
		t.Fatal("Lookup(stub-look) missed")
	}
	if info.Title != "Stub stub-look" {
		t.Errorf("Title = %q", info.Title)
	}
	if _, ok := Lookup("stub-nope"); ok {
		t.Error("Lookup found an unregistered id")
	}
}

func TestFactoryReturnsFreshInstances(t *testing.T) {
	Register("stub-fresh", func() Game { return &stubGame{id: "stub-fresh"} })

	a, _ := Create("stub-fresh")
	b, _ := Create("stub-fresh")
	if a == b {
		t.Error("Create returned the same instance twice")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
