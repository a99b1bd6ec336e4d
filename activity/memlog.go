package activity

import (
	"context"
	"sync"
)

// MemoryLog keeps the last Cap entries in process
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
}

// Ensure MemoryLog implements Log
var _ Log = (*MemoryLog)(nil)

func NewMemoryLog(capacity int) *MemoryLog {
	return &MemoryLog{cap: max(1, capacity)}
}

func (l *MemoryLog) Record(_ context.Context, e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if over := len(l.entries) - l.cap; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
	return nil
}

func (l *MemoryLog) Recent(_ context.Context, n int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n = min(max(n, 0), len(l.entries))
	out := make([]Entry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out, nil
}
