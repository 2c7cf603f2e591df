package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type memoryCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestCacheServiceRememberAndInvalidate(t *testing.T) {
	repo := newMemoryCache()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	loads := 0
	load := func(dest *[]string) func(context.Context) error {
		return func(context.Context) error {
			loads++
			*dest = []string{"4", "5"}
			return nil
		}
	}

	var first, second []string
	require.NoError(t, cache.Remember(ctx, cacheKeyClasses, &first, load(&first)))
	require.NoError(t, cache.Remember(ctx, cacheKeyClasses, &second, load(&second)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, []string{"4", "5"}, second)
	assert.Equal(t, time.Minute, repo.ttls[cacheKeyClasses])
	assert.Equal(t, uint64(1), metrics.Snapshot().CacheHits)

	cache.Invalidate(ctx, cacheKeyClasses)
	var third []string
	require.NoError(t, cache.Remember(ctx, cacheKeyClasses, &third, load(&third)))
	assert.Equal(t, 2, loads)
}

func TestCacheServiceNilIsPassThrough(t *testing.T) {
	var cache *CacheService
	assert.False(t, cache.Enabled())

	var dest []string
	called := false
	require.NoError(t, cache.Remember(context.Background(), cacheKeyStudents, &dest, func(context.Context) error {
		called = true
		return nil
	}))
	assert.True(t, called)
	cache.Invalidate(context.Background(), cacheKeyStudents)
}
