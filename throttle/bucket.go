package throttle

import (
	"sync"
	"time"
)

// Bucket holds the tokens of one client within a group
type Bucket[K comparable] struct {
	mu        sync.Mutex
	tokens    int
	lastCheck time.Time // last refill tick
	group     *BucketGroup[K]
}

// refill adds Increment per whole Period elapsed, capped at Burst.
// Caller holds mu.
func (b *Bucket[K]) refill(now time.Time) {
	conf := b.group.conf
	elapsed := now.Sub(b.lastCheck)
	if elapsed < conf.Period {
		return
	}
	ticks := int(elapsed / conf.Period)
	b.tokens = min(conf.Burst, b.tokens+ticks*conf.Increment)
	b.lastCheck = b.lastCheck.Add(time.Duration(ticks) * conf.Period)
}

func (b *Bucket[K]) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// RetryAfter is the wait until the next token, 0 when one is available
func (b *Bucket[K]) RetryAfter(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	if b.tokens > 0 {
		return 0
	}
	return b.lastCheck.Add(b.group.conf.Period).Sub(now)
}
