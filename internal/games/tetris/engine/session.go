package engine

import "time"

// State is the lifecycle state of a Session.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateWon
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateWon:
		return "won"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session owns one game: the board, the active and next pieces, the counters
// and the drop scheduler. All mutation goes through its methods.
//
// A Session is single-threaded. Commands issued in a state that does not
// accept them are silently ignored and report false.
type Session struct {
	rules   Rules
	catalog *Catalog

	board  Board
	active *Piece
	next   Shape
	state  State

	score int
	lines int

	dropAcc time.Duration
	elapsed time.Duration

	listeners []Listener
}

// NewSession creates a session in StateNotStarted. Rules should be validated
// by the caller.
func NewSession(rules Rules, catalog *Catalog) *Session {
	return &Session{
		rules:   rules,
		catalog: catalog,
	}
}

// Subscribe registers a listener for all subsequent events.
func (s *Session) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Session) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

// Start begins a new game. Accepted only from NotStarted, GameOver and Won.
func (s *Session) Start() bool {
	switch s.state {
	case StateNotStarted, StateGameOver, StateWon:
	default:
		return false
	}

	s.clearState()
	s.state = StateRunning
	s.emit(StartedEvent{})

	first := s.catalog.DrawRandom()
	s.next = s.catalog.DrawRandom()
	s.place(first)
	return true
}

// Reset returns the session to NotStarted from any state.
func (s *Session) Reset() {
	s.clearState()
	s.state = StateNotStarted
}

func (s *Session) clearState() {
	s.board.Clear()
	s.active = nil
	s.next = nil
	s.score = 0
	s.lines = 0
	s.dropAcc = 0
	s.elapsed = 0
}

// Tick advances the drop scheduler by dt. When the accumulated time exceeds
// the current drop interval the piece drops one row and the accumulator
// restarts from zero; the excess is discarded.
func (s *Session) Tick(dt time.Duration) {
	if s.state != StateRunning || dt <= 0 {
		return
	}
	s.elapsed += dt
	s.dropAcc += dt
	if s.dropAcc > s.DropInterval() {
		s.SoftDrop()
	}
}

// Move shifts the active piece one column left (dir < 0) or right (dir > 0).
// A move that would collide leaves the piece where it was.
func (s *Session) Move(dir int) bool {
	if s.state != StateRunning || s.active == nil || dir == 0 {
		return false
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	p := *s.active
	p.X += step
	if s.board.Collide(p.Shape, p.X, p.Y) {
		return false
	}
	s.active = &p
	return true
}

// SoftDrop moves the active piece down one row. If it cannot move, the piece
// is locked into the board, full rows are swept and scored, and the next piece
// spawns. It reports whether the piece moved. The drop timer restarts either way.
func (s *Session) SoftDrop() bool {
	if s.state != StateRunning || s.active == nil {
		return false
	}
	s.dropAcc = 0

	p := *s.active
	if !s.board.Collide(p.Shape, p.X, p.Y+1) {
		p.Y++
		s.active = &p
		return true
	}

	s.board.Merge(p.Shape, p.X, p.Y)
	s.emit(PieceLockedEvent{Type: p.Shape.Type(), X: p.X, Y: p.Y})
	s.clearLines()
	if s.state != StateRunning {
		return false
	}
	s.spawn()
	return false
}

// Rotate turns the active piece clockwise (dir > 0) or counter-clockwise,
// applying the kick search. It reports whether the rotation was applied.
func (s *Session) Rotate(dir int) bool {
	if s.state != StateRunning || s.active == nil || dir == 0 {
		return false
	}
	p, ok := ResolveRotation(&s.board, *s.active, dir)
	if !ok {
		return false
	}
	s.active = &p
	return true
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() bool {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
	case StatePaused:
		s.state = StateRunning
	default:
		return false
	}
	return true
}

// spawn promotes the next piece and draws a new one.
func (s *Session) spawn() {
	shape := s.next
	s.next = s.catalog.DrawRandom()
	s.place(shape)
}

// place puts shape at the centered spawn position, ending the game if it
// collides there.
func (s *Session) place(shape Shape) {
	p := Piece{
		Shape: shape,
		X:     Width/2 - shape.Width()/2,
		Y:     0,
	}
	if s.board.Collide(p.Shape, p.X, p.Y) {
		s.board.Clear()
		s.active = nil
		s.dropAcc = 0
		s.state = StateGameOver
		s.emit(GameOverEvent{Score: s.score, Lines: s.lines})
		return
	}
	s.active = &p
}

// clearLines sweeps the board and applies scoring, win and level-up.
func (s *Session) clearLines() {
	count, rows := s.board.SweepFullRows()
	if count == 0 {
		return
	}

	before := s.Level()
	s.score += s.rules.Points(count, before)
	s.lines += count

	if s.rules.WinScore > 0 && s.score >= s.rules.WinScore {
		s.score = s.rules.WinScore
		s.emitCleared(rows)
		s.emit(ScoreChangedEvent{Score: s.score, Level: s.Level(), Lines: s.lines})
		s.active = nil
		s.state = StateWon
		s.emit(WonEvent{Elapsed: s.elapsed})
		return
	}

	if after := s.Level(); after > before {
		s.emit(LevelUpEvent{Level: after})
	}
	s.emitCleared(rows)
	s.emit(ScoreChangedEvent{Score: s.score, Level: s.Level(), Lines: s.lines})
}

func (s *Session) emitCleared(rows []int) {
	s.emit(LinesClearedEvent{Rows: rows, Count: len(rows)})
	if len(rows) == 4 {
		s.emit(BigClearEvent{})
	}
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Board returns a copy of the settled board.
func (s *Session) Board() Board { return s.board }

// Active returns the falling piece, if any.
func (s *Session) Active() (Piece, bool) {
	if s.active == nil {
		return Piece{}, false
	}
	return *s.active, true
}

// Next returns the buffered next shape, or nil before the first start.
func (s *Session) Next() Shape { return s.next }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int { return s.lines }

// Level is derived from the cleared lines.
func (s *Session) Level() int { return s.rules.Level(s.lines) }

// DropInterval returns the automatic drop interval for the current level.
func (s *Session) DropInterval() time.Duration { return s.rules.DropInterval(s.Level()) }

// Elapsed returns the time spent in Running since the last start.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Rules returns the rules the session plays by.
func (s *Session) Rules() Rules { return s.rules }
