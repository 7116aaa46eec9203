// Package metrics exposes game activity as Prometheus metrics. A Recorder
// subscribes to engine events; it never feeds anything back into a session.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const namespace = "tetris"

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	started      *prometheus.CounterVec
	finished     *prometheus.CounterVec
	pieces       *prometheus.CounterVec
	lines        *prometheus.CounterVec
	bigClears    *prometheus.CounterVec
	levelUps     *prometheus.CounterVec
	finalScore   *prometheus.HistogramVec
	winTime      *prometheus.HistogramVec
	sshSessions  prometheus.Gauge
	sessionTotal prometheus.Counter
}

// NewRecorder creates a recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Rounds started.",
		}, []string{"mode"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Rounds finished, by outcome (won or game_over).",
		}, []string{"mode", "outcome"}),
		pieces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the board, by piece type.",
		}, []string{"mode", "piece"}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Rows removed by line clears.",
		}, []string{"mode"}),
		bigClears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "big_clears_total",
			Help:      "Four-row clears.",
		}, []string{"mode"}),
		levelUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Level increases.",
		}, []string{"mode"}),
		finalScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at the end of a round.",
			Buckets:   []float64{0, 100, 500, 1000, 2000, 3000, 4500, 10000, 50000},
		}, []string{"mode"}),
		winTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "win_time_seconds",
			Help:      "Running time of won rounds.",
			Buckets:   []float64{60, 120, 180, 240, 300, 420, 600, 900, 1200},
		}, []string{"mode"}),
		sshSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "Connected SSH sessions.",
		}),
		sessionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_total",
			Help:      "SSH sessions accepted since start.",
		}),
	}

	r.registry.MustRegister(
		r.started, r.finished, r.pieces, r.lines, r.bigClears, r.levelUps,
		r.finalScore, r.winTime, r.sshSessions, r.sessionTotal,
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Listener returns an engine listener that records events for one mode.
func (r *Recorder) Listener(mode string) engine.Listener {
	return func(e engine.Event) {
		r.Observe(mode, e)
	}
}

// Observe records a single event.
func (r *Recorder) Observe(mode string, e engine.Event) {
	switch ev := e.(type) {
	case engine.StartedEvent:
		r.started.WithLabelValues(mode).Inc()
	case engine.PieceLockedEvent:
		r.pieces.WithLabelValues(mode, ev.Type.String()).Inc()
	case engine.LinesClearedEvent:
		r.lines.WithLabelValues(mode).Add(float64(ev.Count))
	case engine.BigClearEvent:
		r.bigClears.WithLabelValues(mode).Inc()
	case engine.LevelUpEvent:
		r.levelUps.WithLabelValues(mode).Inc()
	case engine.GameOverEvent:
		r.finished.WithLabelValues(mode, "game_over").Inc()
		r.finalScore.WithLabelValues(mode).Observe(float64(ev.Score))
	case engine.WonEvent:
		r.finished.WithLabelValues(mode, "won").Inc()
		r.winTime.WithLabelValues(mode).Observe(ev.Elapsed.Seconds())
	}
}

// RecordWinScore records the final score of a won round. WonEvent carries
// only the time, so callers report the score separately.
func (r *Recorder) RecordWinScore(mode string, score int) {
	r.finalScore.WithLabelValues(mode).Observe(float64(score))
}

// SessionOpened counts a new SSH session.
func (r *Recorder) SessionOpened() {
	r.sshSessions.Inc()
	r.sessionTotal.Inc()
}

// SessionClosed marks an SSH session as gone.
func (r *Recorder) SessionClosed() {
	r.sshSessions.Dec()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
