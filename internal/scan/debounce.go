package scan

import (
	"sync"
	"time"
)

// Debounce coalesces bursts of Schedule calls into a single callback
// fired after a quiet period of the configured delay.
type Debounce struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebounce returns a debouncer that fires fn once Schedule has been
// quiet for delay.
func NewDebounce(delay time.Duration, fn func()) *Debounce {
	return &Debounce{delay: delay, fn: fn}
}

// Schedule arms the timer, replacing any pending one.
func (d *Debounce) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending callback.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
