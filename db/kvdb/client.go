package kvdb

import (
	"context"
	"errors"
)

// Client is a key-value store reduced to what the service uses: capped
// lists addressed from both ends.
type Client interface {
	Init() error
	Close() error
	GetConf() *Conf
	Ping(ctx context.Context) error

	Delete(ctx context.Context, keys ...string) (int64, error)

	//---- List Ops ----

	Push(ctx context.Context, key string, value string) error // append at the tail
	Len(ctx context.Context, key string) (int64, error)
	Range(ctx context.Context, key string, start int64, stop int64) ([]string, error) // 0-basis, stop inclusive, negative from the tail
	Trim(ctx context.Context, key string, start int64, stop int64) error              // same indexing as Range
}

var ErrNotSupported = errors.New("kvdb: operation not supported")
