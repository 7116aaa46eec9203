package tetris

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout in screen cells. Every board cell is two characters wide.
const (
	boardW  = engine.Width*2 + 2
	boardH  = engine.Height + 2
	panelW  = 18
	layoutW = boardW + 1 + panelW
	layoutH = boardH

	previewW = 10
	previewH = 6
	barWidth = 10
)

// pieceColors maps a cell color index to a screen color.
var pieceColors = [...]core.Color{
	core.ColorDefault,
	core.ColorBrightRed,     // T
	core.ColorBrightCyan,    // O
	core.ColorBrightGreen,   // L
	core.ColorBrightMagenta, // J
	core.ColorOrange,        // I
	core.ColorBrightYellow,  // S
	core.ColorBrightBlue,    // Z
}

// levelColors tint the next-piece frame; the tint advances with every level.
var levelColors = [...]core.Color{
	core.ColorGray,
	core.ColorCyan,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorMagenta,
	core.ColorPurple,
	core.ColorRed,
}

// CellColor returns the screen color for a board cell.
func CellColor(c engine.Cell) core.Color {
	if int(c) >= len(pieceColors) {
		return core.ColorDefault
	}
	return pieceColors[c]
}

// LevelColor returns the preview frame tint for a level.
func LevelColor(level int) core.Color {
	if level < 1 {
		level = 1
	}
	return levelColors[(level-1)%len(levelColors)]
}

// Render draws the board, the side panel, effects and any state overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < layoutW || dst.Height() < layoutH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", layoutW, layoutH), core.ColorGray)
		return
	}
	if g.session == nil {
		return
	}

	area := dst.Bounds().Centered(layoutW, layoutH)
	board := core.NewRect(area.X+g.effects.ShakeOffset(), area.Y, boardW, boardH)
	panel := core.NewRect(area.X+boardW+1, area.Y, panelW, layoutH)

	g.renderBoard(dst, board)
	g.renderPanel(dst, panel)
	g.renderOverlay(dst, board)
}

// renderBoard draws the frame, settled cells, the active piece and row flashes.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	s := g.session
	dst.DrawBox(r, core.ColorGray)
	inner := r.Inset(1)

	b := s.Board()
	rows := b.Rows()
	for y := range engine.Height {
		for x := range engine.Width {
			px, py := inner.X+x*2, inner.Y+y
			if c := rows[y][x]; c != engine.Empty {
				drawBlock(dst, px, py, CellColor(c))
			} else {
				dst.SetColored(px+1, py, '·', core.ColorGray)
			}
		}
	}

	if p, ok := s.Active(); ok {
		for sy, row := range p.Shape {
			for sx, c := range row {
				y := p.Y + sy
				if c == engine.Empty || y < 0 {
					continue
				}
				drawBlock(dst, inner.X+(p.X+sx)*2, inner.Y+y, CellColor(c))
			}
		}
	}

	for _, y := range g.effects.FlashRows() {
		if y < 0 || y >= engine.Height {
			continue
		}
		for x := range engine.Width {
			dst.SetColored(inner.X+x*2, inner.Y+y, '▓', core.ColorBrightWhite)
			dst.SetColored(inner.X+x*2+1, inner.Y+y, '▓', core.ColorBrightWhite)
		}
	}

	if level, ok := g.effects.Banner(); ok {
		text := fmt.Sprintf(" LEVEL %d ", level)
		x := inner.X + (inner.W-len(text))/2
		dst.DrawTextColor(x, inner.Y+inner.H/3, text, core.ColorBrightYellow)
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '█', c)
	dst.SetColored(x+1, y, '█', c)
}

// renderPanel draws the title, counters, progress, the next piece and key hints.
func (g *Game) renderPanel(dst *core.Screen, r core.Rect) {
	s := g.session
	x, y := r.X, r.Y

	dst.DrawTextColor(x, y, strings.ToUpper(g.Title()), core.ColorBrightCyan)
	y += 2
	dst.DrawText(x, y, fmt.Sprintf("Score  %d", s.Score()))
	dst.DrawText(x, y+1, fmt.Sprintf("Level  %d", s.Level()))
	dst.DrawText(x, y+2, fmt.Sprintf("Lines  %d", s.Lines()))
	dst.DrawText(x, y+3, "Time   "+FormatElapsed(s.Elapsed()))
	y += 5

	if win := g.rules.WinScore; win > 0 {
		dst.DrawTextColor(x, y, ProgressBar(s.Score(), win, barWidth), core.ColorBrightGreen)
		dst.DrawText(x+barWidth+3, y, fmt.Sprintf("%3d%%", Progress(s.Score(), win)))
		y += 2
	}

	dst.DrawText(x, y, "Next")
	frame := core.NewRect(x, y+1, previewW, previewH)
	dst.DrawBox(frame, LevelColor(s.Level()))
	drawPreview(dst, frame.Inset(1), s.Next())
	y += previewH + 2

	if g.hasBest {
		dst.DrawTextColor(x, y, "Best   "+FormatElapsed(g.best), core.ColorBrightYellow)
	}

	hints := []string{"←→ move  ↓ drop", "↑/x rotate  z ccw", "p pause  q quit"}
	for i, h := range hints {
		dst.DrawTextColor(x, r.Bottom()-len(hints)+i, h, core.ColorGray)
	}
}

// drawPreview centers the occupied part of shape inside r.
func drawPreview(dst *core.Screen, r core.Rect, shape engine.Shape) {
	minX, minY, maxX, maxY := len(shape), len(shape), -1, -1
	for y, row := range shape {
		for x, c := range row {
			if c == engine.Empty {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return
	}

	w, h := (maxX-minX+1)*2, maxY-minY+1
	ox, oy := r.X+(r.W-w)/2, r.Y+(r.H-h)/2
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if c := shape[y][x]; c != engine.Empty {
				drawBlock(dst, ox+(x-minX)*2, oy+y-minY, CellColor(c))
			}
		}
	}
}

// renderOverlay draws the message box for every state other than Running.
func (g *Game) renderOverlay(dst *core.Screen, board core.Rect) {
	s := g.session
	var title, line string
	color := core.ColorBrightWhite

	switch s.State() {
	case engine.StateNotStarted:
		title, line = "TETRIS", "Enter to start"
		color = core.ColorBrightCyan
	case engine.StatePaused:
		title, line = "PAUSED", "P to resume"
	case engine.StateGameOver:
		title, line = "GAME OVER", "R to restart"
		color = core.ColorBrightRed
	case engine.StateWon:
		title, line = "YOU WIN!", "Time "+FormatElapsed(s.Elapsed())
		color = core.ColorBrightYellow
	default:
		return
	}

	w := max(len(title), len([]rune(line))) + 4
	box := board.Centered(w, 5)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextColor(box.X+(box.W-len(title))/2, box.Y+1, title, color)
	dst.DrawText(box.X+(box.W-len([]rune(line)))/2, box.Y+3, line)
}

// Progress returns score as a whole percentage of win, capped at 100.
func Progress(score, win int) int {
	if win <= 0 {
		return 0
	}
	return min(100, max(0, score*100/win))
}

// ProgressBar renders min(score/win, 1) as a bracketed bar of the given width.
func ProgressBar(score, win, width int) string {
	filled := 0
	if win > 0 {
		filled = min(width, max(0, score*width/win))
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// FormatElapsed renders a duration as m:ss.d.
func FormatElapsed(d time.Duration) string {
	ms := max(0, d.Milliseconds())
	total := ms / 1000
	return fmt.Sprintf("%d:%02d.%d", total/60, total%60, (ms%1000)/100)
}
