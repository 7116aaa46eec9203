package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	flashDuration  = 200 * time.Millisecond
	shakeDuration  = 300 * time.Millisecond
	shakePeriod    = 50 * time.Millisecond
	bannerDuration = 1500 * time.Millisecond
)

// Effects holds short-lived visual state derived from engine events.
// It only reads events; nothing here influences the session.
type Effects struct {
	flashRows []int
	flash     time.Duration

	shake    time.Duration
	shakeAge time.Duration

	bannerLevel int
	banner      time.Duration
}

// Observe reacts to one engine event.
func (e *Effects) Observe(ev engine.Event) {
	switch ev := ev.(type) {
	case engine.StartedEvent:
		*e = Effects{}
	case engine.LinesClearedEvent:
		e.flashRows = append(e.flashRows[:0], ev.Rows...)
		e.flash = flashDuration
	case engine.BigClearEvent:
		e.shake = shakeDuration
		e.shakeAge = 0
	case engine.LevelUpEvent:
		e.bannerLevel = ev.Level
		e.banner = bannerDuration
	}
}

// Advance ages every running effect by dt.
func (e *Effects) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	e.flash = max(0, e.flash-dt)
	if e.flash == 0 {
		e.flashRows = e.flashRows[:0]
	}
	if e.shake > 0 {
		e.shakeAge += dt
		e.shake = max(0, e.shake-dt)
	}
	e.banner = max(0, e.banner-dt)
}

// FlashRows returns the board rows to highlight, or nil.
func (e *Effects) FlashRows() []int {
	if e.flash == 0 || len(e.flashRows) == 0 {
		return nil
	}
	return e.flashRows
}

// ShakeOffset returns the horizontal board offset: -1 or +1 while shaking, else 0.
func (e *Effects) ShakeOffset() int {
	if e.shake == 0 {
		return 0
	}
	if (e.shakeAge/shakePeriod)%2 == 0 {
		return 1
	}
	return -1
}

// Banner returns the level to announce while the banner is visible.
func (e *Effects) Banner() (int, bool) {
	if e.banner == 0 {
		return 0, false
	}
	return e.bannerLevel, true
}
