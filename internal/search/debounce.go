package search

import (
	"sync"
	"time"
)

// DefaultDebounce matches the keystroke cadence the interactive UI uses.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer holds at most one pending action. Triggering replaces the
// pending action, so only the last call within the delay window fires. This
// is the caller-side discipline that keeps one request per input stream in
// flight against the engine.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any pending action.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending action, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
