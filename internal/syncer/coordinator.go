// Package syncer delivers the client's offline queue to the server.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/metrics"
)

//go:generate mockgen -source=coordinator.go -destination=mocks/mock.go

// ErrTransient marks failures where the server never judged some of the
// events, from a dropped connection to an internal error on one item. Those
// items are left as is.
var ErrTransient = errors.New("syncer: transient delivery failure")

const (
	DefaultBatchSize   = 100
	MaxBatchSize       = 100
	DefaultMaxAttempts = 5
)

type Queue interface {
	ListPending(ctx context.Context) ([]domain.PendingQueueItem, error)
	MarkSynced(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, reason string, terminal bool) error
}

type Transport interface {
	SendBatch(ctx context.Context, agentID string, events []domain.CheckinEvent) (domain.SyncResponse, error)
	FetchReference(ctx context.Context) (*domain.ReferenceLocation, error)
}

type FailedItem struct {
	ClientEventID uuid.UUID
	Error         string
	Terminal      bool
}

type FlushResult struct {
	Synced int
	Failed []FailedItem
}

// merge folds a later pass into r. An item failing in both keeps the later outcome.
func (r *FlushResult) merge(other FlushResult) {
	r.Synced += other.Synced
	for _, f := range other.Failed {
		replaced := false
		for i := range r.Failed {
			if r.Failed[i].ClientEventID == f.ClientEventID {
				r.Failed[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			r.Failed = append(r.Failed, f)
		}
	}
}

type Options struct {
	AgentID     string
	BatchSize   int
	MaxAttempts int
}

type flight struct {
	done   chan struct{}
	rerun  bool
	result FlushResult
	err    error
}

// Coordinator runs at most one flush at a time. A Flush call arriving while
// another is running joins it, asks for one more pass once the current pass
// ends and returns the combined result.
type Coordinator struct {
	log       *slog.Logger
	queue     Queue
	transport Transport
	opts      Options

	mu     sync.Mutex
	flight *flight
}

func NewCoordinator(log *slog.Logger, queue Queue, transport Transport, opts Options) *Coordinator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchSize > MaxBatchSize {
		opts.BatchSize = MaxBatchSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	return &Coordinator{
		log:       log.With(slog.String("component", "syncer")),
		queue:     queue,
		transport: transport,
		opts:      opts,
	}
}

func (c *Coordinator) Flush(ctx context.Context) (FlushResult, error) {
	c.mu.Lock()
	if f := c.flight; f != nil {
		f.rerun = true
		c.mu.Unlock()

		select {
		case <-f.done:
			return f.result, f.err
		case <-ctx.Done():
			return FlushResult{}, ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	c.flight = f
	c.mu.Unlock()

	var total FlushResult
	for {
		res, err := c.flushOnce(ctx)
		total.merge(res)

		c.mu.Lock()
		if err != nil || !f.rerun {
			f.result, f.err = total, err
			c.flight = nil
			c.mu.Unlock()
			break
		}
		f.rerun = false
		c.mu.Unlock()
	}
	close(f.done)

	observeFlush(total, f.err)
	return f.result, f.err
}

func (c *Coordinator) flushOnce(ctx context.Context) (FlushResult, error) {
	var res FlushResult

	items, err := c.queue.ListPending(ctx)
	if err != nil {
		return res, fmt.Errorf("list pending: %w", err)
	}
	if len(items) == 0 {
		return res, nil
	}

	for start := 0; start < len(items); start += c.opts.BatchSize {
		end := start + c.opts.BatchSize
		if end > len(items) {
			end = len(items)
		}
		batch, err := c.sendBatch(ctx, items[start:end])
		res.merge(batch)
		if err != nil {
			return res, err
		}
	}

	c.log.Info("flush pass done",
		slog.Int("pending", len(items)),
		slog.Int("synced", res.Synced),
		slog.Int("failed", len(res.Failed)),
	)
	return res, nil
}

func (c *Coordinator) sendBatch(ctx context.Context, items []domain.PendingQueueItem) (FlushResult, error) {
	var res FlushResult

	events := make([]domain.CheckinEvent, len(items))
	byID := make(map[uuid.UUID]domain.PendingQueueItem, len(items))
	for i, it := range items {
		events[i] = it.Event
		byID[it.Event.ClientEventID] = it
	}

	resp, err := c.transport.SendBatch(ctx, c.opts.AgentID, events)
	if errors.Is(err, ErrBatchRefused) {
		return c.splitRefused(ctx, items, err)
	}
	if err != nil {
		return res, err
	}

	for _, rec := range resp.Accepted {
		if _, ok := byID[rec.CheckinEventID]; !ok {
			continue
		}
		if err := c.queue.MarkSynced(ctx, rec.CheckinEventID); err != nil {
			return res, fmt.Errorf("mark synced %s: %w", rec.CheckinEventID, err)
		}
		delete(byID, rec.CheckinEventID)
		res.Synced++
	}

	// events the server could not judge stay pending with attempts unchanged
	var unjudged int
	for _, rej := range resp.Rejected {
		it, ok := byID[rej.ClientEventID]
		if !ok {
			continue
		}
		delete(byID, rej.ClientEventID)
		reason := string(rej.Code)
		if rej.Error != "" {
			reason += ": " + rej.Error
		}
		if rej.Code.ServerFault() {
			unjudged++
			res.Failed = append(res.Failed, FailedItem{ClientEventID: rej.ClientEventID, Error: reason})
			continue
		}
		f, err := c.fail(ctx, it, reason, !rej.Retryable)
		if err != nil {
			return res, err
		}
		res.Failed = append(res.Failed, f)
	}

	for _, it := range items {
		if _, ok := byID[it.Event.ClientEventID]; !ok {
			continue
		}
		unjudged++
		res.Failed = append(res.Failed, FailedItem{ClientEventID: it.Event.ClientEventID, Error: "missing from server response"})
	}

	if unjudged > 0 {
		return res, fmt.Errorf("%w: server could not process %d of %d events", ErrTransient, unjudged, len(items))
	}
	return res, nil
}

// splitRefused resends a refused batch in halves, so a batch above the
// server's limit or one malformed event cannot hold back the rest. A single
// refused event is rejected.
func (c *Coordinator) splitRefused(ctx context.Context, items []domain.PendingQueueItem, cause error) (FlushResult, error) {
	if len(items) == 1 {
		f, err := c.fail(ctx, items[0], cause.Error(), true)
		if err != nil {
			return FlushResult{}, err
		}
		return FlushResult{Failed: []FailedItem{f}}, nil
	}

	c.log.Warn("batch refused, resending in halves", slog.Int("size", len(items)), slog.Any("error", cause))

	var res FlushResult
	mid := len(items) / 2
	for _, half := range [][]domain.PendingQueueItem{items[:mid], items[mid:]} {
		part, err := c.sendBatch(ctx, half)
		res.merge(part)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (c *Coordinator) fail(ctx context.Context, it domain.PendingQueueItem, reason string, terminal bool) (FailedItem, error) {
	id := it.Event.ClientEventID
	if !terminal && it.Attempts+1 >= c.opts.MaxAttempts {
		terminal = true
		reason += fmt.Sprintf(" (gave up after %d attempts)", it.Attempts+1)
	}
	if err := c.queue.RecordFailure(ctx, id, reason, terminal); err != nil {
		return FailedItem{}, fmt.Errorf("record failure %s: %w", id, err)
	}
	if terminal {
		c.log.Warn("event rejected", slog.String("client_event_id", id.String()), slog.String("reason", reason))
	}
	return FailedItem{ClientEventID: id, Error: reason, Terminal: terminal}, nil
}

func observeFlush(res FlushResult, err error) {
	switch {
	case err == nil:
		metrics.FlushTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrTransient):
		metrics.FlushTotal.WithLabelValues("transient").Inc()
	default:
		metrics.FlushTotal.WithLabelValues("error").Inc()
	}
	metrics.FlushItemsTotal.WithLabelValues("synced").Add(float64(res.Synced))
	for _, f := range res.Failed {
		if f.Terminal {
			metrics.FlushItemsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.FlushItemsTotal.WithLabelValues("retry").Inc()
		}
	}
}
