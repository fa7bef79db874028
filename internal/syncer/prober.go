package syncer

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

const healthPath = "/api/v1/health"

// Prober polls the server health endpoint and calls onRestored each time the
// server becomes reachable after being unreachable. It starts offline, so the
// first successful probe also fires.
type Prober struct {
	log        *slog.Logger
	url        string
	interval   time.Duration
	http       *http.Client
	onRestored func()

	online atomic.Bool
}

func NewProber(log *slog.Logger, baseURL string, interval time.Duration, onRestored func()) *Prober {
	return &Prober{
		log:        log.With(slog.String("component", "prober")),
		url:        strings.TrimRight(baseURL, "/") + healthPath,
		interval:   interval,
		http:       &http.Client{Timeout: 5 * time.Second},
		onRestored: onRestored,
	}
}

func (p *Prober) Online() bool { return p.online.Load() }

func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Prober) probe(ctx context.Context) {
	up := p.reachable(ctx)
	was := p.online.Swap(up)
	switch {
	case up && !was:
		p.log.Info("server reachable")
		p.onRestored()
	case !up && was:
		p.log.Warn("server unreachable")
	}
}

func (p *Prober) reachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}
