package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	lines := strings.Split(ansi.Strip(RenderScreen(s)), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if lines[0] != "abcd  " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "xyz   " {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRasterizeClearsPreviousFrame(t *testing.T) {
	s := core.NewScreen(10, 10)
	c := core.NewCanvas(100, 100)
	c.FillRect(core.NewRectF(0, 0, 10, 10), core.ColorRed)
	Rasterize(c, s)
	if s.Get(0, 0) == ' ' {
		t.Fatal("rectangle was not drawn")
	}

	c.Clear()
	Rasterize(c, s)
	if s.Get(0, 0) != ' ' {
		t.Errorf("Get(0, 0) = %q after an empty frame", s.Get(0, 0))
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("a"); ansi.Strip(got) != "a" {
		t.Errorf("styleFor(200) rendered %q", got)
	}
}
