// Package debounce collapses bursts of rapidly-changing values into a single
// trailing emission: the callback fires only once the input has been stable
// for the full delay.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the last value of a burst after the configured delay.
// The callback runs on the timer goroutine and must not call back into the
// Debouncer.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	stopped bool
}

func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Update supersedes any pending value and restarts the timer.
func (d *Debouncer[T]) Update(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped {
			return
		}
		d.fn(value)
	})
}

// Stop cancels any pending emission. Once Stop returns no callback will fire,
// so consumers can tear down safely.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
