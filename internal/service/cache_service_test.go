package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type memoryCache struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
	failGet error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	if m.failGet != nil {
		return m.failGet
	}
	raw, ok := m.data[key]
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
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func TestCacheServiceNilAndDisabledAreNoops(t *testing.T) {
	ctx := context.Background()
	var dest map[string]int

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	assert.False(t, nilSvc.Get(ctx, "k", &dest))
	nilSvc.Set(ctx, "k", 1, 0)
	nilSvc.Invalidate(ctx, "k")

	repo := newMemoryCache()
	disabled := NewCacheService(repo, nil, time.Minute, nil, false)
	disabled.Set(ctx, "k", 1, 0)
	assert.Empty(t, repo.data)
}

func TestCacheServiceRoundTripAndDefaultTTL(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryCache()
	svc := NewCacheService(repo, NewMetricsService(), 2*time.Minute, nil, true)

	svc.Set(ctx, "counts", map[string]int{"students": 3}, 0)
	assert.Equal(t, 2*time.Minute, repo.ttls["counts"])

	var got map[string]int
	assert.True(t, svc.Get(ctx, "counts", &got))
	assert.Equal(t, 3, got["students"])

	svc.Invalidate(ctx, "counts")
	assert.False(t, svc.Get(ctx, "counts", &got))
}

func TestCacheServiceReadFailureIsAMiss(t *testing.T) {
	repo := newMemoryCache()
	repo.failGet = errors.New("redis down")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var dest string
	assert.False(t, svc.Get(context.Background(), "k", &dest))
}
