package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(0, 0, "SCORE", core.ColorBrightCyan)
	s.DrawText(6, 0, "100")
	s.SetColored(0, 2, '█', core.ColorPurple)
	s.SetColored(1, 2, '█', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(ansi.Strip(out), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "SCORE 100   " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "██") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, want plain text", got)
	}
}
