package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ostapenko/lategoal/internal/pkg/models"
)

// RedisCache caches pattern rows between the Postgres store and the
// prediction path, and keeps the monitor's alert-cooldown bookkeeping.
//
// The cache TTL must stay below the aggregation cadence: pattern rows are
// wholesale-replaced each batch run, so a cached row must never outlive one
// aggregation cycle. The aggregator also invalidates the namespace after
// every run.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func patternCacheKey(key PatternKey) string {
	return fmt.Sprintf("pattern:%s:%s:%s:%s:%s", key.Country, key.League, key.Team, key.Side, key.IntervalName)
}

// GetPattern returns a cached pattern row, or ErrNotFound on a cache miss.
func (r *RedisCache) GetPattern(ctx context.Context, key PatternKey) (*models.IntervalPattern, error) {
	data, err := r.client.Get(ctx, patternCacheKey(key)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached pattern: %w", err)
	}

	var p models.IntervalPattern
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached pattern: %w", err)
	}
	return &p, nil
}

// SetPattern caches a pattern row for ttl.
func (r *RedisCache) SetPattern(ctx context.Context, p *models.IntervalPattern, ttl time.Duration) error {
	key := PatternKey{Country: p.Country, League: p.League, Team: p.Team, Side: p.Side, IntervalName: p.IntervalName}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pattern: %w", err)
	}

	return r.client.Set(ctx, patternCacheKey(key), data, ttl).Err()
}

// InvalidatePatterns drops the whole pattern namespace. Called by the
// aggregator after a batch run replaces the underlying rows.
func (r *RedisCache) InvalidatePatterns(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "pattern:*").Result()
	if err != nil {
		return fmt.Errorf("failed to list pattern keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// AlertRecord is the monitor's last-alert bookkeeping for one match/interval.
type AlertRecord struct {
	Probability float64   `json:"probability"`
	SentAt      time.Time `json:"sent_at"`
}

func alertKey(matchKey, intervalName string) string {
	return fmt.Sprintf("alert:%s:%s", matchKey, intervalName)
}

// GetLastAlert returns the last alert sent for a match/interval, or nil.
func (r *RedisCache) GetLastAlert(ctx context.Context, matchKey, intervalName string) (*AlertRecord, error) {
	data, err := r.client.Get(ctx, alertKey(matchKey, intervalName)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert record: %w", err)
	}

	var rec AlertRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert record: %w", err)
	}
	return &rec, nil
}

// SetLastAlert records an alert. TTL keeps finished matches from piling up.
func (r *RedisCache) SetLastAlert(ctx context.Context, matchKey, intervalName string, rec AlertRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal alert record: %w", err)
	}
	return r.client.Set(ctx, alertKey(matchKey, intervalName), data, 6*time.Hour).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
