// Package saver hands serialized note content to persistence on a debounce
// timer, coalescing bursts of keystrokes into one write.
package saver

import (
	"sync"
	"time"
)

// WriteFunc persists one serialized content snapshot.
type WriteFunc func(content string) error

// Debounced buffers Save calls under a quiet period and writes the latest
// content once the burst settles. Flush cancels the pending timer and writes
// synchronously; hosts must flush before destructive cross-note operations
// (merge, close) so no edit is lost.
type Debounced struct {
	write   WriteFunc
	quiet   time.Duration
	onError func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	content string

	// wmu covers take-and-write as one unit. Claiming the snapshot only
	// under wmu keeps a timer fire and a Flush ordered: Flush blocks until
	// an in-flight timer write lands, and a timer that lost the race finds
	// nothing pending instead of overwriting newer content.
	wmu sync.Mutex
}

// Options configures a Debounced saver.
type Options struct {
	// Quiet is the debounce period; <= 0 selects the default of 2s.
	Quiet time.Duration
	// OnError receives write failures from timer-driven saves, which have no
	// caller to return to. May be nil.
	OnError func(error)
}

const defaultQuiet = 2 * time.Second

// New returns a saver that persists through write.
func New(write WriteFunc, opts Options) *Debounced {
	quiet := opts.Quiet
	if quiet <= 0 {
		quiet = defaultQuiet
	}
	return &Debounced{
		write:   write,
		quiet:   quiet,
		onError: opts.OnError,
	}
}

// Save records content as the latest snapshot and (re)starts the quiet
// period. Only the newest content survives a burst.
func (d *Debounced) Save(content string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.pending = true
	d.content = content
	if d.timer == nil {
		d.timer = time.AfterFunc(d.quiet, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.quiet)
	d.mu.Unlock()
}

func (d *Debounced) onTimer() {
	d.wmu.Lock()
	content, ok := d.take()
	if !ok {
		d.wmu.Unlock()
		return
	}
	err := d.write(content)
	d.wmu.Unlock()
	if err != nil && d.onError != nil {
		d.onError(err)
	}
}

// Flush cancels any pending timer and writes the pending content now,
// waiting out any timer write already in flight. It returns nil when
// nothing is pending.
func (d *Debounced) Flush() error {
	if d == nil {
		return nil
	}
	d.wmu.Lock()
	defer d.wmu.Unlock()
	content, ok := d.take()
	if !ok {
		return nil
	}
	return d.write(content)
}

// take claims the pending snapshot, stopping the timer. The second return is
// false when no save is pending.
func (d *Debounced) take() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if !d.pending {
		return "", false
	}
	d.pending = false
	return d.content, true
}
