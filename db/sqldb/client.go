package sqldb

import (
	"context"
)

// Client is a connection pool for one configured database.
// Statements are looked up by key in its RawStore, already rewritten for
// the client's placeholder dialect.
type Client interface {
	Handle // promoted query methods
	Init() error
	Close() error
	GetConf() *Conf
	Ping(ctx context.Context) error
	Stmts() *RawStore
}

// Handle runs statements. Read-only callers only need QueryRows/QueryRow.
type Handle interface {
	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // eager: fails on execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // lazy: fails at Scan()
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}
