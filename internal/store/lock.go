package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrGenerationInProgress is returned by GenerationLock.Acquire when another
// caller already holds the lock for the requested year-month.
var ErrGenerationInProgress = errors.New("a generation is already in progress for this month")

// DefaultGenerationLockTTL bounds how long a lock may be held before it
// expires on its own, guarding against a crashed holder wedging the month
// open forever.
const DefaultGenerationLockTTL = 5 * time.Minute

// GenerationLock serializes concurrent Generate calls for the same
// year-month using a Redis SET NX advisory lock, so the loser observes a
// conflict rather than racing the winner (spec.md §5).
type GenerationLock struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewGenerationLock wires client with ttl (DefaultGenerationLockTTL if
// zero).
func NewGenerationLock(client *redis.Client, ttl time.Duration) *GenerationLock {
	if ttl <= 0 {
		ttl = DefaultGenerationLockTTL
	}
	return &GenerationLock{client: client, ttl: ttl, keyPrefix: "roster_generation_lock"}
}

func (l *GenerationLock) key(yearMonth string) string {
	return fmt.Sprintf("%s:%s", l.keyPrefix, yearMonth)
}

// Acquire attempts to take the lock for yearMonth, returning
// ErrGenerationInProgress if another holder already has it.
func (l *GenerationLock) Acquire(ctx context.Context, yearMonth, holderID string) error {
	ok, err := l.client.SetNX(ctx, l.key(yearMonth), holderID, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire generation lock: %w", err)
	}
	if !ok {
		return ErrGenerationInProgress
	}
	return nil
}

// Release drops the lock for yearMonth, but only if holderID still owns
// it — a Lua-free compare-and-delete built from Get+Del, acceptable here
// because the lock's sole purpose is advisory serialization, not a
// distributed mutex under adversarial contention.
func (l *GenerationLock) Release(ctx context.Context, yearMonth, holderID string) error {
	current, err := l.client.Get(ctx, l.key(yearMonth)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read generation lock: %w", err)
	}
	if current != holderID {
		return nil
	}
	return l.client.Del(ctx, l.key(yearMonth)).Err()
}
