package jobinfra

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

const viewKeyPrefix = "job:views:"

// RedisViewTracker implements job.ViewTracker using Redis counters
type RedisViewTracker struct {
	client *redis.Client
}

// NewRedisViewTracker creates a new Redis-based view tracker
func NewRedisViewTracker(client *redis.Client) *RedisViewTracker {
	return &RedisViewTracker{
		client: client,
	}
}

// TrackView increments the view counter of a posting
func (t *RedisViewTracker) TrackView(ctx context.Context, jobID kernel.JobID, viewer kernel.UserID) error {
	if err := t.client.Incr(ctx, viewKeyPrefix+jobID.String()).Err(); err != nil {
		return fmt.Errorf("track view for job %s: %w", jobID, err)
	}
	return nil
}

// Views returns the view count of a posting. Postings never viewed
// count zero.
func (t *RedisViewTracker) Views(ctx context.Context, jobID kernel.JobID) (int64, error) {
	count, err := t.client.Get(ctx, viewKeyPrefix+jobID.String()).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("read views for job %s: %w", jobID, err)
	}
	return count, nil
}

// Ping checks if the Redis connection is alive
func (t *RedisViewTracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}
