// Package autosave debounces saves of an edited value.
package autosave

import (
	"sync"
	"time"

	"github.com/julianstephens/growthlog/internal/logger"
)

// Debouncer calls save with the latest triggered value once no new trigger
// has arrived for the delay. Every trigger restarts the wait.
type Debouncer[T any] struct {
	delay time.Duration
	save  func(T) error

	// saveMu is held from taking the pending value until save returns, so
	// saves land in trigger order.
	saveMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	value   T
	stopped bool
}

// New returns a debouncer that waits delay before calling save.
func New[T any](delay time.Duration, save func(T) error) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, save: save}
}

// Trigger records value and restarts the quiet period. Triggers after Stop
// are ignored.
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.value = value
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if err := d.Flush(); err != nil {
			logger.Warn("Autosave failed", "error", err)
		}
	})
}

// Pending reports whether a value is waiting to be saved.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush saves the pending value now. It is a no-op when nothing is pending.
// A Flush that overlaps a running save waits for it and then saves the
// newer value.
func (d *Debouncer[T]) Flush() error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	value := d.value
	d.pending = false
	d.mu.Unlock()

	return d.save(value)
}

// Stop flushes any pending value and disables further triggers.
func (d *Debouncer[T]) Stop() error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	return d.Flush()
}
