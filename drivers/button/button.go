// Package button turns a noisy push button level into rate-limited trigger
// events.
package button

import "time"

// DebounceWindow is the minimum interval between two triggers of the same
// button.
const DebounceWindow = 200 * time.Millisecond

// Debouncer emits at most one trigger per window while the button is held.
// Mechanical bounce inside the window is swallowed, release emits nothing.
type Debouncer struct {
	window time.Duration
	last   time.Time
}

// New returns a Debouncer with the given re-trigger window.  A zero window
// triggers on every pressed poll.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Poll samples the debounced level.  It reports true when the button is
// pressed and the window since the last accepted trigger has elapsed.
func (d *Debouncer) Poll(pressed bool, now time.Time) bool {
	if !pressed {
		return false
	}
	if now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	return true
}
