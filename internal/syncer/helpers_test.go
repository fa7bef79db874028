package syncer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/offline"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestQueue(t *testing.T) *offline.Store {
	t.Helper()

	conn, err := offline.Open(context.Background(), offline.Config{Path: filepath.Join(t.TempDir(), "agent.db")})
	if err != nil {
		t.Fatalf("offline.Open: %v", err)
	}
	w := offline.NewWorker(conn)
	t.Cleanup(func() {
		w.Close()
		conn.Close()
	})
	return offline.NewStore(conn, w)
}

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func enqueue(t *testing.T, q *offline.Store, kind domain.CheckinKind, at time.Time) domain.CheckinEvent {
	t.Helper()

	ev := domain.CheckinEvent{
		ClientEventID: uuid.New(),
		AgentID:       "agent-7",
		Kind:          kind,
		Latitude:      6.3654,
		Longitude:     2.4183,
		CapturedAt:    at,
	}
	if _, err := q.Enqueue(context.Background(), ev); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	return ev
}

func accept(ids ...uuid.UUID) []domain.ValidationRecord {
	out := make([]domain.ValidationRecord, len(ids))
	for i, id := range ids {
		out[i] = domain.ValidationRecord{ID: uuid.New(), CheckinEventID: id, Valid: true, Reason: domain.ReasonOK}
	}
	return out
}

func acceptAll(events []domain.CheckinEvent) domain.SyncResponse {
	ids := make([]uuid.UUID, len(events))
	for i, ev := range events {
		ids[i] = ev.ClientEventID
	}
	return domain.SyncResponse{Accepted: accept(ids...)}
}
