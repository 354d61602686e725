package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counts is the cached like/dislike tally for one subject.
type Counts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ReactionCounts caches per-subject reaction tallies in Redis. A nil client
// disables caching entirely; correctness never depends on a hit, callers
// always fall back to a live count.
type ReactionCounts struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReactionCounts(rdb *redis.Client, ttl time.Duration) *ReactionCounts {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ReactionCounts{rdb: rdb, ttl: ttl}
}

func key(subject, id string) string {
	return fmt.Sprintf("reactions:%s:%s", subject, id)
}

// Get returns the cached counts and whether the lookup hit.
func (c *ReactionCounts) Get(ctx context.Context, subject, id string) (Counts, bool) {
	if c == nil || c.rdb == nil {
		return Counts{}, false
	}
	data, err := c.rdb.Get(ctx, key(subject, id)).Bytes()
	if err != nil {
		return Counts{}, false
	}
	var out Counts
	if err := json.Unmarshal(data, &out); err != nil {
		return Counts{}, false
	}
	return out, true
}

// Set stores counts with the configured TTL; cache write failures are
// swallowed, the store is advisory.
func (c *ReactionCounts) Set(ctx context.Context, subject, id string, counts Counts) {
	if c == nil || c.rdb == nil {
		return
	}
	if payload, err := json.Marshal(counts); err == nil {
		_ = c.rdb.Set(ctx, key(subject, id), payload, c.ttl).Err()
	}
}

// Invalidate drops the cached tally after a toggle.
func (c *ReactionCounts) Invalidate(ctx context.Context, subject, id string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(subject, id)).Err()
}
