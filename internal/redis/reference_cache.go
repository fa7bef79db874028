package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// absentMarker caches "this agent has no reference" so repeated syncs from
// an unconfigured agent do not reach Postgres.
const absentMarker = "none"

type ReferenceCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewReferenceCache(r *Redis, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{
		client: r.Client,
		prefix: "reference:",
		ttl:    ttl,
	}
}

func (c *ReferenceCache) key(agentID string) string {
	return c.prefix + agentID
}

// Get reports found=false on a cache miss. found=true with a nil reference
// means the agent is known to have none.
func (c *ReferenceCache) Get(ctx context.Context, agentID string) (ref *domain.ReferenceLocation, found bool, err error) {
	data, err := c.client.Get(ctx, c.key(agentID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if string(data) == absentMarker {
		return nil, true, nil
	}

	var out domain.ReferenceLocation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// Set stores ref, or the absence of one when ref is nil.
func (c *ReferenceCache) Set(ctx context.Context, agentID string, ref *domain.ReferenceLocation) error {
	if ref == nil {
		return c.client.Set(ctx, c.key(agentID), absentMarker, c.ttl).Err()
	}
	b, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(agentID), b, c.ttl).Err()
}

func (c *ReferenceCache) Invalidate(ctx context.Context, agentID string) error {
	return c.client.Del(ctx, c.key(agentID)).Err()
}
