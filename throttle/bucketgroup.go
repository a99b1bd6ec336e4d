package throttle

import (
	"sync"
	"time"
)

type BucketGroup[K comparable] struct {
	conf    *BucketConf
	buckets sync.Map // K -> *Bucket[K]
}

func (g *BucketGroup[K]) GetBucket(id K) (*Bucket[K], bool) {
	bAny, ok := g.buckets.Load(id)
	if !ok {
		return nil, false
	}
	return bAny.(*Bucket[K]), true
}

// Take consumes one token from id's bucket, creating a full one on first use
func (g *BucketGroup[K]) Take(id K, now time.Time) bool {
	b, ok := g.GetBucket(id)
	if !ok {
		fresh := &Bucket[K]{tokens: g.conf.Burst, lastCheck: now, group: g}
		bAny, _ := g.buckets.LoadOrStore(id, fresh)
		b = bAny.(*Bucket[K])
	}
	return b.Allow(now)
}

// sweep drops buckets idle for longer than olderThan and returns how many
func (g *BucketGroup[K]) sweep(olderThan time.Duration, now time.Time) int {
	cnt := 0
	g.buckets.Range(func(id, value any) bool {
		b := value.(*Bucket[K])
		b.mu.Lock()
		last := b.lastCheck
		b.mu.Unlock()
		if now.Sub(last) > olderThan {
			g.buckets.Delete(id)
			cnt++
		}
		return true
	})
	return cnt
}
