package domain

import "time"

type QueueState string

const (
	// QueuePending items are re-sent on every flush.
	QueuePending QueueState = "pending"
	// QueueRejected items need correction and are never re-sent automatically.
	QueueRejected QueueState = "rejected"
)

type PendingQueueItem struct {
	Event      CheckinEvent `json:"event"`
	Synced     bool         `json:"synced"`
	Attempts   int          `json:"attempts"`
	LastError  string       `json:"last_error,omitempty"`
	State      QueueState   `json:"state"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
}

type QueueCounts struct {
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}
