package offline

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

// openTestDB returns a private in-memory database with the production
// PRAGMAs and schema. It is closed when the test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)
	conn, err := openDSN(context.Background(), dsn)
	if err != nil {
		t.Fatalf("openTestDB: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	conn := openTestDB(t)
	w := NewWorker(conn)
	t.Cleanup(w.Close)
	return NewStore(conn, w), conn
}

func newEvent(kind domain.CheckinKind, capturedAt time.Time) domain.CheckinEvent {
	return domain.CheckinEvent{
		ClientEventID:  uuid.New(),
		AgentID:        "agent-7",
		Kind:           kind,
		Latitude:       6.3654,
		Longitude:      2.4183,
		AccuracyMeters: 12.5,
		CapturedAt:     capturedAt,
	}
}
