package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// Ensure CachedPatternReader implements PatternReader
var _ PatternReader = (*CachedPatternReader)(nil)

// CachedPatternReader is a read-through Redis cache in front of the pattern
// store. Cache trouble degrades to direct store reads; a miss is cached only
// implicitly (not negatively), since absent rows are cheap to re-check.
type CachedPatternReader struct {
	cache *RedisCache
	store PatternReader
	ttl   time.Duration
}

// NewCachedPatternReader wraps the store. The ttl must stay below the
// aggregation cadence so cached rows never outlive one aggregation cycle.
func NewCachedPatternReader(cache *RedisCache, store PatternReader, ttl time.Duration) *CachedPatternReader {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedPatternReader{cache: cache, store: store, ttl: ttl}
}

func (r *CachedPatternReader) GetPattern(ctx context.Context, key PatternKey) (*models.IntervalPattern, error) {
	if p, err := r.cache.GetPattern(ctx, key); err == nil {
		return p, nil
	} else if !errors.Is(err, ErrNotFound) {
		slog.Warn("pattern cache read failed, falling back to store", "key", key.String(), "error", err)
	}

	p, err := r.store.GetPattern(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetPattern(ctx, p, r.ttl); err != nil {
		slog.Warn("pattern cache write failed", "key", key.String(), "error", err)
	}
	return p, nil
}
