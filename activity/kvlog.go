package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"

	"github.com/zeptools/informes/db/kvdb"
)

// KVLog stores entries as JSON in a capped key-value list, oldest first
type KVLog struct {
	Client kvdb.Client
	Key    string
	Cap    int64
}

// Ensure KVLog implements Log
var _ Log = (*KVLog)(nil)

func (l *KVLog) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	if err = l.Client.Push(ctx, l.Key, string(data)); err != nil {
		return fmt.Errorf("push %q: %w", l.Key, err)
	}
	if l.Cap > 0 {
		if err = l.Client.Trim(ctx, l.Key, -l.Cap, -1); err != nil {
			return fmt.Errorf("trim %q: %w", l.Key, err)
		}
	}
	return nil
}

func (l *KVLog) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	raw, err := l.Client.Range(ctx, l.Key, -int64(n), -1)
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", l.Key, err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, r := range slices.Backward(raw) {
		var e Entry
		if err = json.Unmarshal([]byte(r), &e); err != nil {
			log.Printf("[WARN][activity] skipping unreadable entry in %q: %v", l.Key, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
