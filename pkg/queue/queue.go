// Package queue provides a Redis-list backed job queue for the
// asynchronous embedding pipeline. Enqueue is fire-and-forget; a
// background worker drains the list with blocking pops.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Job is one unit of embedding work.
type Job struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Queue is the minimal contract the worker and producers share.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
	Depth(ctx context.Context) (int64, error)
}

// RedisQueue implements Queue on a single Redis list.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "atlas:embeddings"
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	if q == nil || q.client == nil {
		return errors.New("queue client not configured")
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Dequeue blocks up to timeout for the next job. A nil job with a nil
// error means the timeout elapsed with nothing queued.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	if q == nil || q.client == nil {
		return nil, errors.New("queue client not configured")
	}
	values, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(values) < 2 {
		return nil, nil
	}

	var job Job
	if err := json.Unmarshal([]byte(values[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *RedisQueue) Depth(ctx context.Context) (int64, error) {
	if q == nil || q.client == nil {
		return 0, errors.New("queue client not configured")
	}
	return q.client.LLen(ctx, q.key).Result()
}
