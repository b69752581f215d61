package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer delays the callback per path until a quiet period has elapsed,
// coalescing rapid successive writes to the same file into one dispatch.
// Distinct paths debounce independently and may fire concurrently.
type Debouncer struct {
	interval time.Duration
	callback func(path string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDebouncer creates a debouncer that waits for interval of quiet per
// path before firing callback with that path.
func NewDebouncer(interval time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
		timers:   make(map[string]*time.Timer),
	}
}

// Trigger records an event for path. The callback fires once no further
// events for the same path arrive within the debounce interval.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
	}

	d.timers[path] = time.AfterFunc(d.interval, func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("debouncer callback panicked", slog.Any("error", r))
			}
		}()

		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()

		d.callback(path)
	})
}

// Stop cancels all pending callbacks.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}
