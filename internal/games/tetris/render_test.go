package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00.0"},
		{999 * time.Millisecond, "0:00.9"},
		{61*time.Second + 250*time.Millisecond, "1:01.2"},
		{10 * time.Minute, "10:00.0"},
		{-time.Second, "0:00.0"},
	}
	for _, tc := range tests {
		if got := FormatElapsed(tc.in); got != tc.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0, 4500); got != 0 {
		t.Errorf("Progress(0, 4500) = %v, want 0", got)
	}
	if got := Progress(2250, 4500); got != 50 {
		t.Errorf("Progress(2250, 4500) = %v, want 50", got)
	}
	if got := Progress(9000, 4500); got != 100 {
		t.Errorf("Progress(9000, 4500) = %v, want 100", got)
	}
	if got := Progress(100, 0); got != 0 {
		t.Errorf("Progress(100, 0) = %v, want 0", got)
	}

	if got := ProgressBar(2250, 4500, 10); got != "[█████░░░░░]" {
		t.Errorf("ProgressBar(2250, 4500, 10) = %q", got)
	}
	if got := ProgressBar(5000, 4500, 10); got != "[██████████]" {
		t.Errorf("ProgressBar(5000, 4500, 10) = %q", got)
	}
	if got := ProgressBar(100, 0, 10); got != "[░░░░░░░░░░]" {
		t.Errorf("ProgressBar(100, 0, 10) = %q", got)
	}
}

func TestLevelColorCycles(t *testing.T) {
	first := LevelColor(1)
	if got := LevelColor(1 + len(levelColors)); got != first {
		t.Errorf("colors do not wrap: %v != %v", got, first)
	}
	if LevelColor(2) == first {
		t.Error("levels 1 and 2 share a color")
	}
	if got := LevelColor(0); got != first {
		t.Errorf("LevelColor(0) = %v, want %v", got, first)
	}
}

func TestCellColor(t *testing.T) {
	tests := []struct {
		cell engine.Cell
		want core.Color
	}{
		{engine.Empty, core.ColorDefault},
		{engine.Cell(engine.PieceO), core.ColorBrightCyan},
		{42, core.ColorDefault},
	}
	for _, tc := range tests {
		if got := CellColor(tc.cell); got != tc.want {
			t.Errorf("CellColor(%d) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestRenderNotStarted(t *testing.T) {
	g := NewWithConfig(ModeClassic, config.DefaultTetrisConfig())
	g.Reset(testConfig())
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Enter to start", "Score  0", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRunning(t *testing.T) {
	g := startedGame(t, ModeClassic)
	g.SetBestTime(95 * time.Second)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Level  1", "Best   1:35.0", "[░░░░░░░░░░]"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Enter to start") {
		t.Errorf("start prompt shown while running:\n%s", out)
	}

	var blocks int
	for y := range screen.Height() {
		for x := range screen.Width() {
			if c := screen.GetCell(x, y); c.Rune == '█' && c.Color != core.ColorDefault {
				blocks++
			}
		}
	}
	// Four cells of the active piece plus four of the preview, two columns each.
	if blocks != 16 {
		t.Errorf("drew %d colored blocks, want 16", blocks)
	}
}

func TestRenderEndlessHasNoProgressBar(t *testing.T) {
	g := startedGame(t, ModeEndless)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	if strings.Contains(out, "[░") {
		t.Errorf("endless mode drew a progress bar:\n%s", out)
	}
	if !strings.Contains(out, "TETRIS (ENDLESS)") {
		t.Errorf("screen missing the endless title:\n%s", out)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := startedGame(t, ModeClassic)
	screen := core.NewScreen(30, 10)

	g.Render(screen)

	if out := screen.String(); !strings.Contains(out, "Window too small") {
		t.Errorf("no size warning on a 30x10 screen:\n%s", out)
	}
}
