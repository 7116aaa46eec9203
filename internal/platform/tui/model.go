package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// GameFactory creates the game for a mode at a difficulty.
type GameFactory func(mode string, preset config.DifficultyPreset) (registry.Game, error)

// Options carries the collaborators shared by every screen.
type Options struct {
	Store   *storage.Store // nil disables persistence
	Logger  *log.Logger    // nil discards
	NewGame GameFactory    // nil falls back to registry.Create
	Player  string         // prefilled leaderboard name
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) create(mode string, preset config.DifficultyPreset) (registry.Game, error) {
	if o.NewGame != nil {
		return o.NewGame(mode, preset)
	}
	return registry.Create(mode)
}

// bestTimeSetter is implemented by games that show the leaderboard record.
type bestTimeSetter interface {
	SetBestTime(time.Duration)
}

type phase int

const (
	phasePlaying phase = iota
	phaseNameEntry
	phaseLeaderboard
)

// GameModel is the Bubble Tea model for one game: it drives the frame clock,
// saves the final score once per round and runs the leaderboard flow after
// a win.
type GameModel struct {
	game       registry.Game
	opts       Options
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	lastTick   time.Time

	phase     phase
	scoreSeen string // run id whose final score was already stored
	nameInput textinput.Model
	board     table.Model
	boardErr  error

	quitting   bool
	backToMenu bool
	quitOnBack bool // standalone programs exit instead of returning to a menu
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, opts Options, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = storage.DefaultPlayerName
	ti.CharLimit = 24
	ti.Width = 26
	ti.SetValue(opts.Player)

	m := GameModel{
		game:       game,
		opts:       opts,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		nameInput:  ti,
		board:      newLeaderboardTable(cfg.ScreenH),
	}
	game.Reset(cfg)
	m.gameState = game.State()
	m.refreshBestTime()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.phase {
		case phaseNameEntry:
			return m.handleNameKey(msg)
		case phaseLeaderboard:
			return m.handleLeaderboardKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.board.SetHeight(leaderboardHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input while the board is shown.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused || !m.gameState.Started) {
		m.backToMenu = true
		return m, m.backCmd()
	}
	return m, nil
}

// handleTick advances the game by the wall time since the previous tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Delta = frameDelta(m.lastTick, now)
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.phase == phasePlaying && m.gameState.GameOver && m.scoreSeen != m.gameState.RunID {
		m.scoreSeen = m.gameState.RunID
		m.saveScore()
		if m.gameState.Won && m.opts.Store != nil {
			m.phase = phaseNameEntry
			m.nameInput.CursorEnd()
			return m, tea.Batch(m.nameInput.Focus(), tickCmd(m.config.TickRate))
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore stores the final score of the round.
func (m *GameModel) saveScore() {
	st := m.gameState
	logger := m.opts.logger()
	if m.opts.Store == nil || st.Score == 0 {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), st.Score, st.Lines, st.Level); err != nil {
		logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// handleNameKey edits the leaderboard name and submits it on enter.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.submitWinTime(m.nameInput.Value())
		return m, nil
	case "esc":
		m.showLeaderboard("")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// submitWinTime records the round and switches to the leaderboard.
func (m *GameModel) submitWinTime(name string) {
	st := m.gameState
	name = storage.NormalizeName(name)
	added, err := m.opts.Store.AddWinTime(st.RunID, m.game.ID(), name, st.Elapsed)
	if err != nil {
		m.opts.logger().Warn("could not save win time", "run", st.RunID, "error", err)
	} else if added {
		m.opts.logger().Info("win time saved", "run", st.RunID, "name", name, "time_ms", st.Elapsed.Milliseconds())
	}
	m.refreshBestTime()
	m.showLeaderboard(st.RunID)
}

// showLeaderboard loads the top entries, highlighting runID if present.
func (m *GameModel) showLeaderboard(runID string) {
	m.nameInput.Blur()
	m.phase = phaseLeaderboard
	if m.opts.Store == nil {
		return
	}

	entries, err := m.opts.Store.TopWinTimes(m.game.ID(), storage.LeaderboardSize)
	m.boardErr = err
	m.board.SetRows(winTimeRows(entries))
	m.board.SetCursor(0)
	for i, e := range entries {
		if e.RunID == runID {
			m.board.SetCursor(i)
		}
	}
}

// handleLeaderboardKey restarts, leaves or scrolls the leaderboard.
func (m GameModel) handleLeaderboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionRestart, core.ActionConfirm:
		m.phase = phasePlaying
		m.inputFrame.Set(core.ActionRestart)
		return m, nil
	case core.ActionBack:
		m.backToMenu = true
		return m, m.backCmd()
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m GameModel) backCmd() tea.Cmd {
	if m.quitOnBack {
		return tea.Quit
	}
	return nil
}

func (m *GameModel) refreshBestTime() {
	setter, ok := m.game.(bestTimeSetter)
	if !ok || m.opts.Store == nil {
		return
	}
	best, found, err := m.opts.Store.BestWinTime(m.game.ID())
	if err != nil {
		m.opts.logger().Warn("could not load best time", "game", m.game.ID(), "error", err)
		return
	}
	if found {
		setter.SetBestTime(best)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.logger().Warn("could not create screenshot dir", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.logger().Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseNameEntry:
		return m.place(m.nameEntryView())
	case phaseLeaderboard:
		return m.place(m.leaderboardView())
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

func (m GameModel) place(content string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(1, 3)
	dialogTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m GameModel) nameEntryView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		dialogTitleStyle.Render("YOU WIN!"),
		"",
		fmt.Sprintf("Score %d   Time %s", m.gameState.Score, tetris.FormatElapsed(m.gameState.Elapsed)),
		"",
		"Enter your name for the leaderboard",
		m.nameInput.View(),
		"",
		hintStyle.Render("enter: save  esc: skip"),
	)
	return dialogStyle.Render(body)
}

func (m GameModel) leaderboardView() string {
	content := m.board.View()
	switch {
	case m.boardErr != nil:
		content = "Leaderboard unavailable"
	case len(m.board.Rows()) == 0:
		content = "No wins recorded yet."
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		dialogTitleStyle.Render("FASTEST WINS"),
		"",
		content,
		"",
		hintStyle.Render("r: play again  esc: menu  q: quit"),
	)
	return dialogStyle.Render(body)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the latest game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, opts, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
