package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/metrics"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

//go:generate mockgen -source=record_publisher.go -destination=mocks/mock.go
type RecordSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.ValidationRecord, error)
}

// RecordPublisher delivers newly created validation records to the
// configured webhook. Delivery is at least once per dequeue; a record that
// exhausts its retries is dropped and counted.
type RecordPublisher struct {
	logger   *slog.Logger
	cfg      config.WebhookConfig
	source   RecordSource
	http     *http.Client
	poolSize int
	pollWait time.Duration
	backoff  func(attempt int) time.Duration
}

func NewRecordPublisher(logger *slog.Logger, cfg config.WebhookConfig, source RecordSource, poolSize int) *RecordPublisher {
	if poolSize < 1 {
		poolSize = 1
	}
	return &RecordPublisher{
		logger:   logger,
		cfg:      cfg,
		source:   source,
		http:     &http.Client{Timeout: 5 * time.Second},
		poolSize: poolSize,
		pollWait: 5 * time.Second,
		backoff:  func(attempt int) time.Duration { return time.Duration(attempt) * time.Second },
	}
}

func (p *RecordPublisher) Run(ctx context.Context) {
	p.logger.Info("recordPublisher STARTED", slog.String("url", p.cfg.URL), slog.Int("workers", p.poolSize))

	var wg sync.WaitGroup
	for i := 0; i < p.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx)
		}()
	}
	wg.Wait()

	p.logger.Info("recordPublisher STOPPED", slog.String("reason", context.Cause(ctx).Error()))
}

func (p *RecordPublisher) worker(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		rec, err := p.source.BRPop(ctx, p.pollWait)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("BRPop failed", slog.Any("error", err))
			if !sleepCtx(ctx, 500*time.Millisecond) {
				return
			}
			continue
		}

		p.sendWithRetry(ctx, rec)
	}
}

func (p *RecordPublisher) sendWithRetry(ctx context.Context, rec domain.ValidationRecord) {
	body, err := json.Marshal(rec)
	if err != nil {
		p.logger.Error("marshal validation record failed", slog.Any("error", err))
		metrics.WebhookDeliveredTotal.WithLabelValues("dropped").Inc()
		return
	}

	maxRetries := max(p.cfg.MaxRetries, 1)
	for attempt := 1; attempt <= maxRetries; attempt++ {
		reason, ok := p.send(ctx, body)
		if ok {
			metrics.WebhookDeliveredTotal.WithLabelValues("ok").Inc()
			return
		}

		p.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("client_event_id", rec.CheckinEventID.String()),
			slog.String("reason", reason),
		)
		metrics.WebhookDeliveredTotal.WithLabelValues("failed").Inc()

		if attempt < maxRetries && !sleepCtx(ctx, p.backoff(attempt)) {
			break
		}
	}

	p.logger.Error("webhook gave up",
		slog.String("client_event_id", rec.CheckinEventID.String()),
		slog.Int("attempts", maxRetries),
	)
	metrics.WebhookDeliveredTotal.WithLabelValues("dropped").Inc()
}

func (p *RecordPublisher) send(ctx context.Context, body []byte) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err.Error(), false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err.Error(), false
	}
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Status, false
	}
	return "", true
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
