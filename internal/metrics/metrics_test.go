package metrics

import (
	"io"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// gather returns the metric families keyed by name.
func gather(t *testing.T, r *Recorder) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

// counterValue sums a counter family over metrics whose labels include want.
func counterValue(mf *dto.MetricFamily, want map[string]string) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		if labelsMatch(m, want) {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func expectCounter(t *testing.T, fams map[string]*dto.MetricFamily, name string, labels map[string]string, want float64) {
	t.Helper()
	if got := counterValue(fams[name], labels); got != want {
		t.Errorf("%s%v = %v, want %v", name, labels, got, want)
	}
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestObserveCountsEvents(t *testing.T) {
	r := NewRecorder()
	listen := r.Listener("tetris")

	listen(engine.StartedEvent{})
	listen(engine.PieceLockedEvent{Type: engine.PieceI})
	listen(engine.PieceLockedEvent{Type: engine.PieceI})
	listen(engine.PieceLockedEvent{Type: engine.PieceO})
	listen(engine.LinesClearedEvent{Rows: []int{19, 18, 17, 16}, Count: 4})
	listen(engine.BigClearEvent{})
	listen(engine.LevelUpEvent{Level: 2})
	listen(engine.ScoreChangedEvent{Score: 1500, Level: 2, Lines: 4})
	listen(engine.GameOverEvent{Score: 1500, Lines: 4})

	fams := gather(t, r)
	mode := map[string]string{"mode": "tetris"}

	expectCounter(t, fams, "tetris_games_started_total", mode, 1)
	expectCounter(t, fams, "tetris_pieces_locked_total", map[string]string{"piece": "I"}, 2)
	expectCounter(t, fams, "tetris_pieces_locked_total", mode, 3)
	expectCounter(t, fams, "tetris_lines_cleared_total", mode, 4)
	expectCounter(t, fams, "tetris_big_clears_total", mode, 1)
	expectCounter(t, fams, "tetris_level_ups_total", mode, 1)
	expectCounter(t, fams, "tetris_games_finished_total", map[string]string{"outcome": "game_over"}, 1)

	hist := fams["tetris_final_score"].GetMetric()[0].GetHistogram()
	if hist.GetSampleCount() != 1 || hist.GetSampleSum() != 1500 {
		t.Errorf("final score histogram = %d samples summing %v, want 1 of 1500", hist.GetSampleCount(), hist.GetSampleSum())
	}
}

func TestObserveWin(t *testing.T) {
	r := NewRecorder()

	r.Observe("tetris", engine.WonEvent{Elapsed: 150 * time.Second})
	r.RecordWinScore("tetris", 4500)

	fams := gather(t, r)
	expectCounter(t, fams, "tetris_games_finished_total", map[string]string{"outcome": "won"}, 1)

	win := fams["tetris_win_time_seconds"].GetMetric()[0].GetHistogram()
	if got := win.GetSampleSum(); got != 150 {
		t.Errorf("win time sum = %vs, want 150s", got)
	}
	if got := fams["tetris_final_score"].GetMetric()[0].GetHistogram().GetSampleSum(); got != 4500 {
		t.Errorf("final score sum = %v, want 4500", got)
	}
}

func TestModesAreSeparate(t *testing.T) {
	r := NewRecorder()

	r.Observe("tetris", engine.StartedEvent{})
	r.Observe("tetris_endless", engine.StartedEvent{})
	r.Observe("tetris_endless", engine.StartedEvent{})

	fams := gather(t, r)
	expectCounter(t, fams, "tetris_games_started_total", map[string]string{"mode": "tetris"}, 1)
	expectCounter(t, fams, "tetris_games_started_total", map[string]string{"mode": "tetris_endless"}, 2)
}

func TestSessionGauge(t *testing.T) {
	r := NewRecorder()

	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()

	fams := gather(t, r)
	if got := fams["tetris_ssh_sessions_active"].GetMetric()[0].GetGauge().GetValue(); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
	if got := fams["tetris_ssh_sessions_total"].GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("total sessions = %v, want 2", got)
	}
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()

	a.Observe("tetris", engine.StartedEvent{})

	expectCounter(t, gather(t, b), "tetris_games_started_total", nil, 0)
}

func TestListenerOnLiveSession(t *testing.T) {
	r := NewRecorder()
	s := engine.NewSession(engine.DefaultRules(), engine.NewCatalog(rand.New(rand.NewSource(1))))
	s.Subscribe(r.Listener("tetris"))

	if !s.Start() {
		t.Fatal("Start() was rejected")
	}
	for s.State() == engine.StateRunning {
		s.SoftDrop()
	}

	fams := gather(t, r)
	expectCounter(t, fams, "tetris_games_started_total", nil, 1)
	expectCounter(t, fams, "tetris_games_finished_total", map[string]string{"outcome": "game_over"}, 1)
	if got := counterValue(fams["tetris_pieces_locked_total"], nil); got <= 0 {
		t.Errorf("pieces locked = %v, want > 0", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.Observe("tetris", engine.StartedEvent{})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET %s: %v", srv.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `tetris_games_started_total{mode="tetris"} 1`) {
		t.Errorf("started counter missing from exposition:\n%s", body)
	}
}
