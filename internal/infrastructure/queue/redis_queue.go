package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPollTimeout = 5 * time.Second

// RedisTaskQueue is a Redis-list backed task queue. Producers LPUSH
// encoded tasks and workers BRPOP them, so the list behaves as a FIFO
// shared across processes.
type RedisTaskQueue struct {
	client      *redis.Client
	key         string
	pollTimeout time.Duration
}

// RedisQueueOptions configures a RedisTaskQueue
type RedisQueueOptions struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	PollTimeout time.Duration
}

// NewRedisTaskQueue creates a Redis-backed task queue and verifies
// connectivity with a ping.
func NewRedisTaskQueue(opts RedisQueueOptions) (*RedisTaskQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisTaskQueue(client, opts.Key, opts.PollTimeout), nil
}

// NewRedisTaskQueueWithClient wraps an existing Redis client
func NewRedisTaskQueueWithClient(client *redis.Client, key string, pollTimeout time.Duration) *RedisTaskQueue {
	return newRedisTaskQueue(client, key, pollTimeout)
}

func newRedisTaskQueue(client *redis.Client, key string, pollTimeout time.Duration) *RedisTaskQueue {
	if key == "" {
		key = "inventory:tasks"
	}
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &RedisTaskQueue{
		client:      client,
		key:         key,
		pollTimeout: pollTimeout,
	}
}

// Enqueue pushes a task onto the list
func (q *RedisTaskQueue) Enqueue(ctx context.Context, task Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// Dequeue blocks up to the poll timeout waiting for a task. It returns
// (nil, nil) when the timeout elapses with nothing queued.
func (q *RedisTaskQueue) Dequeue(ctx context.Context) (*Task, error) {
	values, err := q.client.BRPop(ctx, q.pollTimeout, q.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to dequeue task: %w", err)
	}
	// BRPOP returns [key, value]
	if len(values) != 2 {
		return nil, fmt.Errorf("unexpected brpop reply length %d", len(values))
	}

	var task Task
	if err := json.Unmarshal([]byte(values[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

// Len returns the number of queued tasks
func (q *RedisTaskQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// Close closes the underlying Redis client
func (q *RedisTaskQueue) Close() error {
	return q.client.Close()
}

var (
	_ TaskQueue  = (*RedisTaskQueue)(nil)
	_ TaskSource = (*RedisTaskQueue)(nil)
)
