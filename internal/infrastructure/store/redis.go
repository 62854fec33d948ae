package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// Redis key layout.
const (
	savedSearchHashKey = "saved_searches"
	historyListKey     = "search_history"
)

// Redis is a SearchStore and ResultCache backed by a Redis instance.
// Saved searches live in a hash, history in a list, cached results as
// TTL-bound string keys.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using a redis:// URL and verifies the
// connection with a ping. ttl bounds the lifetime of cached search results;
// saved searches and history do not expire.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// PutSavedSearch implements SearchStore.
func (r *Redis) PutSavedSearch(ctx context.Context, s domain.SavedSearch) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal saved search: %w", err)
	}
	return r.client.HSet(ctx, savedSearchHashKey, s.ID, data).Err()
}

// GetSavedSearch implements SearchStore.
func (r *Redis) GetSavedSearch(ctx context.Context, id string) (domain.SavedSearch, error) {
	data, err := r.client.HGet(ctx, savedSearchHashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return domain.SavedSearch{}, domain.ErrSavedSearchNotFound
	}
	if err != nil {
		return domain.SavedSearch{}, fmt.Errorf("redis hget: %w", err)
	}

	var s domain.SavedSearch
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return domain.SavedSearch{}, fmt.Errorf("unmarshal saved search: %w", err)
	}
	return s, nil
}

// ListSavedSearches implements SearchStore. Results are newest first.
func (r *Redis) ListSavedSearches(ctx context.Context) ([]domain.SavedSearch, error) {
	values, err := r.client.HGetAll(ctx, savedSearchHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	result := make([]domain.SavedSearch, 0, len(values))
	for _, data := range values {
		var s domain.SavedSearch
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			// Skip entries written by incompatible versions.
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteSavedSearch implements SearchStore.
func (r *Redis) DeleteSavedSearch(ctx context.Context, id string) error {
	removed, err := r.client.HDel(ctx, savedSearchHashKey, id).Result()
	if err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	if removed == 0 {
		return domain.ErrSavedSearchNotFound
	}
	return nil
}

// SaveHistory implements SearchStore.
func (r *Redis) SaveHistory(ctx context.Context, entries []string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, historyListKey)
	if len(entries) > 0 {
		values := make([]interface{}, len(entries))
		for i, e := range entries {
			values[i] = e
		}
		pipe.RPush(ctx, historyListKey, values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// LoadHistory implements SearchStore.
func (r *Redis) LoadHistory(ctx context.Context) ([]string, error) {
	entries, err := r.client.LRange(ctx, historyListKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}
	return entries, nil
}

// Get implements ResultCache. A miss returns (nil, nil).
func (r *Redis) Get(ctx context.Context, key string) (*domain.SearchResult, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result domain.SearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached result: %w", err)
	}
	return &result, nil
}

// Set implements ResultCache.
func (r *Redis) Set(ctx context.Context, key string, result *domain.SearchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// Ensure interfaces are implemented.
var (
	_ SearchStore = (*Redis)(nil)
	_ ResultCache = (*Redis)(nil)
)
