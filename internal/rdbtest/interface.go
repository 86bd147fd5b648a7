package rdbtest

import (
	"context"
	"time"

	"github.com/AdguardTeam/replitdb"
)

// Interface Mocks
//
// Keep entities within a module/package in alphabetic order.

// type check
var _ replitdb.Interface = (*DB)(nil)

// DB is a [replitdb.Interface] for tests.
type DB struct {
	OnGet        func(ctx context.Context, key string) (val string, ok bool, err error)
	OnSet        func(ctx context.Context, key, val string) (err error)
	OnDelete     func(ctx context.Context, key string) (err error)
	OnList       func(ctx context.Context) (keys []string, err error)
	OnListPrefix func(ctx context.Context, prefix string) (keys []string, err error)
	OnEmpty      func(ctx context.Context) (err error)
	OnGetAll     func(ctx context.Context) (kvs map[string]string, err error)
}

// Get implements the [replitdb.Interface] interface for *DB.
func (db *DB) Get(ctx context.Context, key string) (val string, ok bool, err error) {
	return db.OnGet(ctx, key)
}

// Set implements the [replitdb.Interface] interface for *DB.
func (db *DB) Set(ctx context.Context, key, val string) (err error) {
	return db.OnSet(ctx, key, val)
}

// Delete implements the [replitdb.Interface] interface for *DB.
func (db *DB) Delete(ctx context.Context, key string) (err error) {
	return db.OnDelete(ctx, key)
}

// List implements the [replitdb.Interface] interface for *DB.
func (db *DB) List(ctx context.Context) (keys []string, err error) {
	return db.OnList(ctx)
}

// ListPrefix implements the [replitdb.Interface] interface for *DB.
func (db *DB) ListPrefix(ctx context.Context, prefix string) (keys []string, err error) {
	return db.OnListPrefix(ctx, prefix)
}

// Empty implements the [replitdb.Interface] interface for *DB.
func (db *DB) Empty(ctx context.Context) (err error) {
	return db.OnEmpty(ctx)
}

// GetAll implements the [replitdb.Interface] interface for *DB.
func (db *DB) GetAll(ctx context.Context) (kvs map[string]string, err error) {
	return db.OnGetAll(ctx)
}

// type check
var _ replitdb.Metrics = (*Metrics)(nil)

// Metrics is a [replitdb.Metrics] for tests.
type Metrics struct {
	OnObserveOperation func(ctx context.Context, op replitdb.Op, dur time.Duration, err error)
	OnIncrementLookups func(ctx context.Context, hit bool)
}

// ObserveOperation implements the [replitdb.Metrics] interface for *Metrics.
func (m *Metrics) ObserveOperation(
	ctx context.Context,
	op replitdb.Op,
	dur time.Duration,
	err error,
) {
	m.OnObserveOperation(ctx, op, dur, err)
}

// IncrementLookups implements the [replitdb.Metrics] interface for *Metrics.
func (m *Metrics) IncrementLookups(ctx context.Context, hit bool) {
	m.OnIncrementLookups(ctx, hit)
}
