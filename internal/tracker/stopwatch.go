package tracker

import (
	"fmt"
	"time"
)

// Phase is the state of a session stopwatch.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseRecording
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseRecording:
		return "recording"
	}
	return "idle"
}

// Stopwatch measures a work session that can be paused and resumed.
type Stopwatch struct {
	phase   Phase
	started time.Time
	banked  time.Duration
}

// Phase returns the current phase.
func (w *Stopwatch) Phase() Phase {
	return w.phase
}

// Start begins a fresh session. It is a no-op unless the stopwatch is idle.
func (w *Stopwatch) Start(now time.Time) {
	if w.phase != PhaseIdle {
		return
	}
	w.banked = 0
	w.started = now
	w.phase = PhaseRunning
}

// Pause stops the clock, keeping the elapsed time.
func (w *Stopwatch) Pause(now time.Time) {
	if w.phase != PhaseRunning {
		return
	}
	w.banked += now.Sub(w.started)
	w.phase = PhasePaused
}

// Resume restarts the clock after a pause.
func (w *Stopwatch) Resume(now time.Time) {
	if w.phase != PhasePaused {
		return
	}
	w.started = now
	w.phase = PhaseRunning
}

// Finish stops the clock and moves to the recording phase, where the
// session waits for its post.
func (w *Stopwatch) Finish(now time.Time) {
	if w.phase == PhaseRunning {
		w.banked += now.Sub(w.started)
	}
	if w.phase == PhaseRunning || w.phase == PhasePaused {
		w.phase = PhaseRecording
	}
}

// Reset discards the session.
func (w *Stopwatch) Reset() {
	*w = Stopwatch{}
}

// Elapsed returns the total running time, truncated to whole seconds.
func (w *Stopwatch) Elapsed(now time.Time) time.Duration {
	d := w.banked
	if w.phase == PhaseRunning {
		d += now.Sub(w.started)
	}
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second)
}

// FormatElapsed renders d as MM:SS, or HH:MM:SS from one hour up.
func FormatElapsed(d time.Duration) string {
	sec := int(d / time.Second)
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
