package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Flusher interface {
	Flush(ctx context.Context) (FlushResult, error)
}

type trigger int

const (
	triggerTimer trigger = iota + 1
	triggerManual
	triggerConnectivity
)

func (t trigger) String() string {
	switch t {
	case triggerTimer:
		return "timer"
	case triggerManual:
		return "manual"
	case triggerConnectivity:
		return "connectivity"
	}
	return "unknown"
}

// Scheduler decides when the coordinator flushes: on its own interval, on
// external triggers, and with exponential backoff after failures. Timer
// triggers are skipped while backing off; manual and connectivity triggers
// always flush, and connectivity also clears the backoff.
type Scheduler struct {
	log      *slog.Logger
	flusher  Flusher
	interval time.Duration
	backoff  *Backoff
	now      func() time.Time

	wake      chan trigger
	notBefore time.Time
}

func NewScheduler(log *slog.Logger, flusher Flusher, interval time.Duration, backoff *Backoff) *Scheduler {
	if backoff == nil {
		backoff = NewBackoff()
	}
	return &Scheduler{
		log:      log.With(slog.String("component", "scheduler")),
		flusher:  flusher,
		interval: interval,
		backoff:  backoff,
		now:      time.Now,
		wake:     make(chan trigger, 8),
	}
}

func (s *Scheduler) OnConnectivityRestored() { s.signal(triggerConnectivity) }
func (s *Scheduler) OnTimer()                { s.signal(triggerTimer) }
func (s *Scheduler) OnManualTrigger()        { s.signal(triggerManual) }

func (s *Scheduler) signal(t trigger) {
	select {
	case s.wake <- t:
	default:
		// enough wake-ups are queued already
	}
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("scheduler STARTED", slog.Duration("interval", s.interval))

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		var t trigger
		select {
		case <-ctx.Done():
			s.log.Info("scheduler STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		case <-timer.C:
			t = triggerTimer
		case t = <-s.wake:
		}

		switch t {
		case triggerTimer:
			if s.now().Before(s.notBefore) {
				continue
			}
		case triggerConnectivity:
			s.backoff.Reset()
		}

		delay := s.flush(ctx, t)
		timer.Reset(delay)
	}
}

func (s *Scheduler) flush(ctx context.Context, t trigger) time.Duration {
	res, err := s.flusher.Flush(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return s.interval
		}
		delay := s.backoff.Next()
		s.notBefore = s.now().Add(delay)
		s.log.Warn("flush failed",
			slog.String("trigger", t.String()),
			slog.Bool("transient", errors.Is(err, ErrTransient)),
			slog.Duration("retry_in", delay),
			slog.Any("error", err),
		)
		return delay
	}

	s.backoff.Reset()
	s.notBefore = time.Time{}
	if res.Synced > 0 || len(res.Failed) > 0 {
		s.log.Info("flush done",
			slog.String("trigger", t.String()),
			slog.Int("synced", res.Synced),
			slog.Int("failed", len(res.Failed)),
		)
	}
	return s.interval
}
