package syncer

import "time"

const (
	DefaultBackoffBase   = 5 * time.Second
	DefaultBackoffFactor = 2.0
	DefaultBackoffMax    = 5 * time.Minute
)

// Backoff yields exponentially growing delays, capped at Max.
// It is not safe for concurrent use.
type Backoff struct {
	Base   time.Duration
	Factor float64
	Max    time.Duration

	attempt int
}

func NewBackoff() *Backoff {
	return &Backoff{Base: DefaultBackoffBase, Factor: DefaultBackoffFactor, Max: DefaultBackoffMax}
}

func (b *Backoff) Next() time.Duration {
	d := float64(b.Base)
	for i := 0; i < b.attempt; i++ {
		d *= b.Factor
		if d >= float64(b.Max) {
			break
		}
	}
	b.attempt++
	if d >= float64(b.Max) {
		return b.Max
	}
	return time.Duration(d)
}

func (b *Backoff) Reset() {
	b.attempt = 0
}
