package saver

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (r *recorder) write(content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.writes = append(r.writes, content)
	return nil
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

func TestDebounced_CoalescesBurst(t *testing.T) {
	t.Parallel()

	var rec recorder
	d := New(rec.write, Options{Quiet: 20 * time.Millisecond})

	d.Save("a")
	d.Save("ab")
	d.Save("abc")

	deadline := time.Now().Add(2 * time.Second)
	for len(rec.all()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	got := rec.all()
	if len(got) != 1 || got[0] != "abc" {
		t.Fatalf("expected single write of latest content; got %#v", got)
	}
}

func TestDebounced_FlushWritesImmediately(t *testing.T) {
	t.Parallel()

	var rec recorder
	d := New(rec.write, Options{Quiet: time.Hour})

	d.Save("draft")
	if err := d.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got := rec.all()
	if len(got) != 1 || got[0] != "draft" {
		t.Fatalf("expected immediate write; got %#v", got)
	}

	// Timer was cancelled: nothing further arrives.
	time.Sleep(50 * time.Millisecond)
	if got := rec.all(); len(got) != 1 {
		t.Fatalf("cancelled timer still wrote: %#v", got)
	}
}

func TestDebounced_FlushWithoutPendingIsNoOp(t *testing.T) {
	t.Parallel()

	var rec recorder
	d := New(rec.write, Options{Quiet: time.Hour})
	if err := d.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := rec.all(); len(got) != 0 {
		t.Fatalf("unexpected writes: %#v", got)
	}
}

func TestDebounced_FlushReturnsWriteError(t *testing.T) {
	t.Parallel()

	rec := recorder{err: errors.New("disk full")}
	d := New(rec.write, Options{Quiet: time.Hour})
	d.Save("x")
	if err := d.Flush(); err == nil {
		t.Fatal("expected write error")
	}
}

func TestDebounced_TimerErrorReachesCallback(t *testing.T) {
	t.Parallel()

	rec := recorder{err: errors.New("disk full")}
	errCh := make(chan error, 1)
	d := New(rec.write, Options{
		Quiet:   10 * time.Millisecond,
		OnError: func(err error) { errCh <- err },
	})
	d.Save("x")

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("nil error delivered")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer write error never surfaced")
	}
}

// blockingRecorder signals when its first write begins and holds every write
// until released, so tests can catch a timer write mid-flight.
type blockingRecorder struct {
	recorder
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingRecorder() *blockingRecorder {
	return &blockingRecorder{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (r *blockingRecorder) blockedWrite(content string) error {
	r.once.Do(func() { close(r.entered) })
	<-r.release
	return r.write(content)
}

func TestDebounced_FlushWaitsForInFlightTimerWrite(t *testing.T) {
	t.Parallel()

	rec := newBlockingRecorder()
	d := New(rec.blockedWrite, Options{Quiet: 5 * time.Millisecond})

	d.Save("edit")
	<-rec.entered // timer write has claimed the snapshot and is mid-flight

	flushed := make(chan error, 1)
	go func() { flushed <- d.Flush() }()

	select {
	case <-flushed:
		t.Fatal("flush returned before the in-flight timer write landed")
	case <-time.After(50 * time.Millisecond):
	}

	close(rec.release)
	if err := <-flushed; err != nil {
		t.Fatalf("flush: %v", err)
	}
	got := rec.all()
	if len(got) != 1 || got[0] != "edit" {
		t.Fatalf("expected the in-flight edit persisted; got %#v", got)
	}
}

func TestDebounced_FlushedContentSurvivesStaleTimerWrite(t *testing.T) {
	t.Parallel()

	rec := newBlockingRecorder()
	d := New(rec.blockedWrite, Options{Quiet: 5 * time.Millisecond})

	d.Save("v1")
	<-rec.entered // timer write of v1 is mid-flight
	d.Save("v2")

	flushed := make(chan error, 1)
	go func() { flushed <- d.Flush() }()

	close(rec.release)
	if err := <-flushed; err != nil {
		t.Fatalf("flush: %v", err)
	}

	got := rec.all()
	if len(got) == 0 || got[len(got)-1] != "v2" {
		t.Fatalf("latest content must land last; got %#v", got)
	}

	// No further timer fire may resurrect v1.
	time.Sleep(50 * time.Millisecond)
	after := rec.all()
	if after[len(after)-1] != "v2" {
		t.Fatalf("stale timer write overwrote flushed content: %#v", after)
	}
}

func TestDebounced_SaveAfterFlushStartsNewCycle(t *testing.T) {
	t.Parallel()

	var rec recorder
	d := New(rec.write, Options{Quiet: 10 * time.Millisecond})

	d.Save("one")
	if err := d.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	d.Save("two")

	deadline := time.Now().Add(2 * time.Second)
	for len(rec.all()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	got := rec.all()
	if len(got) != 2 || got[1] != "two" {
		t.Fatalf("expected follow-up debounced write; got %#v", got)
	}
}
