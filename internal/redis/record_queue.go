package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"

	"github.com/redis/go-redis/v9"
)

// RecordQueue hands newly created validation records to the publisher.
type RecordQueue struct {
	client *redis.Client
	key    string
}

func NewRecordQueue(client *redis.Client, key string) *RecordQueue {
	return &RecordQueue{client: client, key: key}
}

func (q *RecordQueue) Enqueue(ctx context.Context, rec domain.ValidationRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

// BRPop waits up to timeout for the oldest record. It returns e.ErrQueueEmpty
// when nothing arrived in time.
func (q *RecordQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.ValidationRecord, error) {
	var rec domain.ValidationRecord

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rec, e.ErrQueueEmpty
		}
		return rec, err
	}
	if len(res) < 2 {
		return rec, e.ErrQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func (q *RecordQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
