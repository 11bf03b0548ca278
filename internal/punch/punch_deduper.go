package punch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupCapacity = 1000
	dedupTTL      = 300 * time.Second
)

// Deduper is the idempotency window for device request IDs. Seen reports
// whether the request was already consumed; MarkSeen consumes it.
//
//go:generate mockgen -source=punch_deduper.go -destination=mock/punch_deduper_mock.go -package=mock
type Deduper interface {
	Seen(ctx context.Context, requestID string) (bool, error)
	MarkSeen(ctx context.Context, requestID string) error
}

type memoryDeduper struct {
	mu       sync.Mutex
	entries  map[string]time.Time
	order    []string
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryDeduper is the single-instance default: a bounded,
// time-windowed key set. Oldest keys are evicted once capacity is hit,
// so the window is best-effort under sustained bursts.
func NewMemoryDeduper() Deduper {
	return newMemoryDeduper(dedupCapacity, dedupTTL, time.Now)
}

func newMemoryDeduper(capacity int, ttl time.Duration, now func() time.Time) *memoryDeduper {
	return &memoryDeduper{
		entries:  make(map[string]time.Time, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      now,
	}
}

func (d *memoryDeduper) Seen(ctx context.Context, requestID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seenAt, ok := d.entries[requestID]
	if !ok {
		return false, nil
	}
	if d.now().Sub(seenAt) > d.ttl {
		delete(d.entries, requestID)
		return false, nil
	}
	return true, nil
}

func (d *memoryDeduper) MarkSeen(ctx context.Context, requestID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[requestID]; !ok {
		d.order = append(d.order, requestID)
	}
	d.entries[requestID] = d.now()

	for len(d.entries) > d.capacity {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.entries, oldest)
	}
	return nil
}

type redisDeduper struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDeduper shares the idempotency window across instances. Keys
// expire on the same window as the in-memory variant.
func NewRedisDeduper(rdb *redis.Client) Deduper {
	return &redisDeduper{rdb: rdb, ttl: dedupTTL}
}

func dedupKey(requestID string) string {
	return fmt.Sprintf("punch:dedup:%s", requestID)
}

func (d *redisDeduper) Seen(ctx context.Context, requestID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, dedupKey(requestID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *redisDeduper) MarkSeen(ctx context.Context, requestID string) error {
	return d.rdb.SetNX(ctx, dedupKey(requestID), "seen", d.ttl).Err()
}
