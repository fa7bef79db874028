package offline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

// Store is the durable client-side queue of captured check-in events plus a
// cached copy of the agent's reference location. Reads go straight to the
// database; every mutation goes through the writer.
type Store struct {
	db     *sql.DB
	writer *Worker
	now    func() time.Time
}

func NewStore(db *sql.DB, writer *Worker) *Store {
	return &Store{db: db, writer: writer, now: time.Now}
}

const eventColumns = `client_event_id, agent_id, mission_id, kind, latitude, longitude,
  accuracy_meters, captured_at_ns, note, photo_ref, attempts, last_error, state, enqueued_at_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

// Enqueue stores ev. Enqueueing an id that is already stored is a no-op and
// returns the stored item.
func (s *Store) Enqueue(ctx context.Context, ev domain.CheckinEvent) (domain.PendingQueueItem, error) {
	const op = "offline.Store.Enqueue"

	if ev.ClientEventID == uuid.Nil {
		return domain.PendingQueueItem{}, fmt.Errorf("%s: missing client_event_id: %w", op, e.ErrInvalidInput)
	}

	var missionID any
	if ev.MissionID != nil {
		missionID = ev.MissionID.String()
	}

	var item domain.PendingQueueItem
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO pending_events(
  client_event_id, agent_id, mission_id, kind, latitude, longitude,
  accuracy_meters, captured_at_ns, note, photo_ref, enqueued_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(client_event_id) DO NOTHING;`,
			ev.ClientEventID.String(), ev.AgentID, missionID, string(ev.Kind), ev.Latitude, ev.Longitude,
			ev.AccuracyMeters, ev.CapturedAt.UnixNano(), ev.Note, ev.PhotoRef, s.now().UTC().UnixMilli(),
		); err != nil {
			return err
		}

		row := tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM pending_events WHERE client_event_id = ?;`,
			ev.ClientEventID.String())
		var err error
		item, err = scanItem(row)
		return err
	})
	if err != nil {
		return domain.PendingQueueItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListPending returns the items still to be sent, oldest capture first.
func (s *Store) ListPending(ctx context.Context) ([]domain.PendingQueueItem, error) {
	const op = "offline.Store.ListPending"

	items, err := s.list(ctx, domain.QueuePending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// ListRejected returns the items the server refused for good.
func (s *Store) ListRejected(ctx context.Context) ([]domain.PendingQueueItem, error) {
	const op = "offline.Store.ListRejected"

	items, err := s.list(ctx, domain.QueueRejected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Store) list(ctx context.Context, state domain.QueueState) ([]domain.PendingQueueItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+`
FROM pending_events
WHERE state = ?
ORDER BY captured_at_ns ASC, enqueued_at_ms ASC, rowid ASC;`, string(state))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.PendingQueueItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkSynced drops an item the server acknowledged. Unknown ids are ignored.
func (s *Store) MarkSynced(ctx context.Context, id uuid.UUID) error {
	const op = "offline.Store.MarkSynced"

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM pending_events WHERE client_event_id = ?;`, id.String())
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RecordFailure counts one more failed delivery for the item. A terminal
// failure moves it out of the pending set.
func (s *Store) RecordFailure(ctx context.Context, id uuid.UUID, reason string, terminal bool) error {
	const op = "offline.Store.RecordFailure"

	state := domain.QueuePending
	if terminal {
		state = domain.QueueRejected
	}

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE pending_events
SET attempts = attempts + 1, last_error = ?, state = ?
WHERE client_event_id = ?;`, reason, string(state), id.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return e.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Dismiss deletes a rejected item once the user has seen it.
func (s *Store) Dismiss(ctx context.Context, id uuid.UUID) error {
	const op = "offline.Store.Dismiss"

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM pending_events WHERE client_event_id = ? AND state = ?;`,
			id.String(), string(domain.QueueRejected))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return e.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	const op = "offline.Store.Clear"

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM pending_events;`)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Counts(ctx context.Context) (domain.QueueCounts, error) {
	const op = "offline.Store.Counts"

	rows, err := s.db.QueryContext(ctx, `SELECT state, COUNT(*) FROM pending_events GROUP BY state;`)
	if err != nil {
		return domain.QueueCounts{}, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var c domain.QueueCounts
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return domain.QueueCounts{}, fmt.Errorf("%s: %w", op, err)
		}
		switch domain.QueueState(state) {
		case domain.QueuePending:
			c.Pending = n
		case domain.QueueRejected:
			c.Rejected = n
		}
	}
	if err := rows.Err(); err != nil {
		return domain.QueueCounts{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Store) SaveReference(ctx context.Context, ref domain.ReferenceLocation) error {
	const op = "offline.Store.SaveReference"

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO reference_cache(agent_id, latitude, longitude, tolerance_radius_meters, updated_at_ms, fetched_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(agent_id) DO UPDATE SET
  latitude = excluded.latitude,
  longitude = excluded.longitude,
  tolerance_radius_meters = excluded.tolerance_radius_meters,
  updated_at_ms = excluded.updated_at_ms,
  fetched_at_ms = excluded.fetched_at_ms;`,
			ref.AgentID, ref.Latitude, ref.Longitude, ref.ToleranceRadiusMeters,
			ref.UpdatedAt.UTC().UnixMilli(), s.now().UTC().UnixMilli())
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LoadReference returns the cached reference, or nil when none is cached.
func (s *Store) LoadReference(ctx context.Context, agentID string) (*domain.ReferenceLocation, error) {
	const op = "offline.Store.LoadReference"

	var (
		ref       domain.ReferenceLocation
		updatedMs int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT agent_id, latitude, longitude, tolerance_radius_meters, updated_at_ms
FROM reference_cache WHERE agent_id = ?;`, agentID,
	).Scan(&ref.AgentID, &ref.Latitude, &ref.Longitude, &ref.ToleranceRadiusMeters, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ref.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &ref, nil
}

// ForgetReference drops the cached reference after the server reports none.
func (s *Store) ForgetReference(ctx context.Context, agentID string) error {
	const op = "offline.Store.ForgetReference"

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM reference_cache WHERE agent_id = ?;`, agentID)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func scanItem(r rowScanner) (domain.PendingQueueItem, error) {
	var (
		item       domain.PendingQueueItem
		id         string
		missionID  sql.NullString
		kind       string
		capturedNs int64
		lastError  sql.NullString
		state      string
		enqueuedMs int64
	)
	if err := r.Scan(&id, &item.Event.AgentID, &missionID, &kind, &item.Event.Latitude, &item.Event.Longitude,
		&item.Event.AccuracyMeters, &capturedNs, &item.Event.Note, &item.Event.PhotoRef,
		&item.Attempts, &lastError, &state, &enqueuedMs); err != nil {
		return domain.PendingQueueItem{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.PendingQueueItem{}, fmt.Errorf("bad client_event_id %q: %w", id, err)
	}
	item.Event.ClientEventID = parsed
	if missionID.Valid {
		mid, err := uuid.Parse(missionID.String)
		if err != nil {
			return domain.PendingQueueItem{}, fmt.Errorf("bad mission_id %q: %w", missionID.String, err)
		}
		item.Event.MissionID = &mid
	}
	item.Event.Kind = domain.CheckinKind(kind)
	item.Event.CapturedAt = time.Unix(0, capturedNs).UTC()
	item.LastError = lastError.String
	item.State = domain.QueueState(state)
	item.EnqueuedAt = time.UnixMilli(enqueuedMs).UTC()
	return item, nil
}
