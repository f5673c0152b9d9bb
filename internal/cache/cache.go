// Package cache memoizes table reads for a fixed time-to-live. Entries are never
// invalidated early; external edits show up once the entry expires.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL matches the hourly refresh of the roster tables.
const DefaultTTL = time.Hour

// Backend stores encoded snapshots. A miss is (nil, false, nil).
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// LoadFunc produces a fresh snapshot.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Table is one cached read query.
type Table[T any] struct {
	backend Backend
	key     string
	ttl     time.Duration
	load    LoadFunc[T]
}

func NewTable[T any](backend Backend, key string, ttl time.Duration, load LoadFunc[T]) *Table[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table[T]{backend: backend, key: key, ttl: ttl, load: load}
}

// Get returns the cached snapshot, loading it on a miss. Failed loads are not cached.
func (t *Table[T]) Get(ctx context.Context) (T, error) {
	var zero T

	raw, ok, err := t.backend.Get(ctx, t.key)
	if err != nil {
		log.Warn().Err(err).Str("key", t.key).Msg("cache read failed, loading from source")
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		log.Warn().Str("key", t.key).Msg("discarding undecodable cache entry")
	}

	v, err := t.load(ctx)
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", t.key, err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := t.backend.Set(ctx, t.key, data, t.ttl); err != nil {
		log.Warn().Err(err).Str("key", t.key).Msg("cache write failed")
	}
	return v, nil
}
