package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Queue    string `yaml:"queue"`
}

const defaultQueueKey = "composition_events"

// Queue is a delay-capable composition-event queue over a Redis sorted
// set: the score is the unix millisecond an event becomes due. Members
// carry a uuid prefix so identical events never collapse into one.
type Queue struct {
	rdb *redis.Client
	key string
}

// NewQueue connects to Redis and wraps the configured queue key.
func NewQueue(cfg Config) (*Queue, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := cfg.Queue
	if key == "" {
		key = defaultQueueKey
	}
	return &Queue{rdb: rdb, key: key}, nil
}

// NewQueueWithClient wraps an existing client, used by tests.
func NewQueueWithClient(rdb *redis.Client, key string) *Queue {
	if key == "" {
		key = defaultQueueKey
	}
	return &Queue{rdb: rdb, key: key}
}

// Close closes the Redis connection.
func (q *Queue) Close() error {
	return q.rdb.Close()
}

// Schedule enqueues the event to become due after delay. Zero delay
// means due immediately. Transport failures are retryable.
func (q *Queue) Schedule(ctx context.Context, event domain.CompositionEvent, delay time.Duration) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	member := uuid.NewString() + "|" + string(payload)
	due := float64(time.Now().Add(delay).UnixMilli())

	if err := q.rdb.ZAdd(ctx, q.key, redis.Z{Score: due, Member: member}).Err(); err != nil {
		return domain.Retryable(fmt.Errorf("zadd failed: %w", err))
	}
	return nil
}

// PopDue removes and returns the oldest event whose due time has
// passed. found is false when nothing is due.
func (q *Queue) PopDue(ctx context.Context, now time.Time) (event domain.CompositionEvent, found bool, err error) {
	results, err := q.rdb.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: 1,
	}).Result()
	if err != nil {
		return event, false, fmt.Errorf("zrangebyscore failed: %w", err)
	}
	if len(results) == 0 {
		return event, false, nil
	}

	member := results[0]
	removed, err := q.rdb.ZRem(ctx, q.key, member).Result()
	if err != nil {
		return event, false, fmt.Errorf("zrem failed: %w", err)
	}
	if removed == 0 {
		// another consumer claimed it first
		return event, false, nil
	}

	_, payload, ok := strings.Cut(member, "|")
	if !ok {
		return event, false, fmt.Errorf("malformed queue member %q", member)
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return event, false, fmt.Errorf("decode event: %w", err)
	}
	return event, true, nil
}

// Depth returns the number of queued events, due or not.
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	return q.rdb.ZCard(ctx, q.key).Result()
}

// DeadLetter records a terminally failed event on a side list so
// nothing is silently dropped.
func (q *Queue) DeadLetter(ctx context.Context, event domain.CompositionEvent, cause error) error {
	entry, err := json.Marshal(struct {
		Event domain.CompositionEvent `json:"event"`
		Error string                  `json:"error"`
		At    time.Time               `json:"at"`
	}{event, cause.Error(), time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key+":dead", entry).Err(); err != nil {
		return fmt.Errorf("rpush failed: %w", err)
	}
	return nil
}
