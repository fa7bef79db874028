package syncer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeFlusher struct {
	mu    sync.Mutex
	errs  []error
	calls chan struct{}
}

func newFakeFlusher(errs ...error) *fakeFlusher {
	return &fakeFlusher{errs: errs, calls: make(chan struct{}, 16)}
}

func (f *fakeFlusher) Flush(context.Context) (FlushResult, error) {
	f.mu.Lock()
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	f.mu.Unlock()
	f.calls <- struct{}{}
	return FlushResult{}, err
}

func waitCall(t *testing.T, f *fakeFlusher) {
	t.Helper()
	select {
	case <-f.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a flush")
	}
}

func expectNoCall(t *testing.T, f *fakeFlusher) {
	t.Helper()
	select {
	case <-f.calls:
		t.Fatal("unexpected flush")
	case <-time.After(100 * time.Millisecond):
	}
}

func startScheduler(t *testing.T, f Flusher, interval time.Duration) *Scheduler {
	t.Helper()

	s := NewScheduler(newTestLogger(), f, interval, nil)
	fixed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s
}

func TestScheduler_ManualTriggerFlushes(t *testing.T) {
	f := newFakeFlusher()
	s := startScheduler(t, f, time.Hour)

	s.OnManualTrigger()
	waitCall(t, f)
	expectNoCall(t, f)
}

func TestScheduler_TimerSkippedWhileBackingOff(t *testing.T) {
	f := newFakeFlusher(ErrTransient)
	s := startScheduler(t, f, time.Hour)

	s.OnManualTrigger()
	waitCall(t, f)

	s.OnTimer()
	s.OnConnectivityRestored()
	waitCall(t, f)
	expectNoCall(t, f)
}

func TestScheduler_TimerFlushesWhenHealthy(t *testing.T) {
	f := newFakeFlusher()
	s := startScheduler(t, f, time.Hour)

	s.OnTimer()
	waitCall(t, f)
}

func TestScheduler_OwnIntervalFlushes(t *testing.T) {
	f := newFakeFlusher(errors.New("boom"))
	startScheduler(t, f, 20*time.Millisecond)

	waitCall(t, f)
}
