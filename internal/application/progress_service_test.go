// internal/application/progress_service_test.go
package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/inmem"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
)

type mockCache struct {
	get    func(ctx context.Context, key string) ([]byte, error)
	set    func(ctx context.Context, key string, value interface{}) error
	delete func(ctx context.Context, prefix string) error
	ping   func(ctx context.Context) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	return m.get(ctx, key)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}) error {
	return m.set(ctx, key, value)
}

func (m *mockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.delete(ctx, prefix)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.ping(ctx)
}

func TestProgressService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	rider := f.addRider(t, "rider", "123", 5)
	today := f.clock.Now()

	for i := 0; i < 3; i++ {
		_, err := f.store.AddDelivery(ctx, &domain.Delivery{UserID: rider.ID, CustomerName: "A", Status: domain.StatusCompleted, Date: today})
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := f.store.AddDelivery(ctx, &domain.Delivery{UserID: rider.ID, CustomerName: "B", Status: domain.StatusCompleted, Date: today.AddDate(0, 0, -1)})
		require.NoError(t, err)
	}

	var setKey string
	cache := &mockCache{
		get: func(ctx context.Context, key string) ([]byte, error) { return nil, ports.ErrCacheMiss },
		set: func(ctx context.Context, key string, value interface{}) error {
			setKey = key
			return nil
		},
		delete: func(ctx context.Context, prefix string) error { return nil },
	}
	svc := NewProgressService(f.store, cache, f.store.Events(), logger.Nop())
	defer svc.Close()

	summary, err := svc.Summary(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Daily.Completed)
	assert.Equal(t, 0.6, summary.Daily.Ratio)
	assert.Equal(t, 60, summary.Daily.Percent)
	assert.Equal(t, 5, summary.Weekly.Completed)
	assert.Equal(t, 35, summary.Weekly.Target)
	assert.Equal(t, 5*31, summary.Monthly.Target)
	assert.Equal(t, 5*10, summary.MonthToDateTarget)
	assert.False(t, summary.GoalReached)
	assert.Equal(t, 5, summary.LifetimeCompleted)
	assert.Equal(t, 5.0, summary.LifetimeAverage)
	assert.Equal(t, "progress:"+rider.ID+":2026-03-10", setKey)
}

func TestProgressService_CacheHit(t *testing.T) {
	cached := domain.ProgressSummary{UserID: "u1", Daily: domain.NewProgress(4, 5)}
	data, _ := json.Marshal(cached)

	cache := &mockCache{
		get: func(ctx context.Context, key string) ([]byte, error) { return data, nil },
		set: func(ctx context.Context, key string, value interface{}) error {
			t.Errorf("Set() called on cache hit")
			return nil
		},
	}
	f := newStoreFixture(t)
	svc := NewProgressService(f.store, cache, nil, logger.Nop())

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Daily.Completed)
}

func TestProgressService_CacheErrors(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	rider := f.addRider(t, "rider", "123", 5)

	tests := []struct {
		name  string
		cache *mockCache
	}{
		{
			name: "Get error",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return nil, errors.New("cache error") },
				set: func(ctx context.Context, key string, value interface{}) error { return nil },
			},
		},
		{
			name: "Set error",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return nil, ports.ErrCacheMiss },
				set: func(ctx context.Context, key string, value interface{}) error { return errors.New("cache error") },
			},
		},
		{
			name: "Corrupt entry",
			cache: &mockCache{
				get: func(ctx context.Context, key string) ([]byte, error) { return []byte("{"), nil },
				set: func(ctx context.Context, key string, value interface{}) error { return nil },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(f.store, tt.cache, nil, logger.Nop())
			summary, err := svc.Summary(ctx, rider.ID)
			require.NoError(t, err) // cache errors don't fail the call
			assert.Equal(t, rider.ID, summary.UserID)
		})
	}

	t.Run("Unknown user", func(t *testing.T) {
		svc := NewProgressService(f.store, nil, nil, logger.Nop())
		_, err := svc.Summary(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProgressService_InvalidatesOnStoreEvents(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	rider := f.addRider(t, "rider", "123", 1)

	cache := inmem.NewCache(0)
	svc := NewProgressService(f.store, cache, f.store.Events(), logger.Nop())

	first, err := svc.Summary(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Daily.Completed)

	d, err := f.store.StartDelivery(ctx, rider.ID, "Asha|100")
	require.NoError(t, err)
	_, err = f.store.CompleteDelivery(ctx, d.ID, "ok")
	require.NoError(t, err)

	second, err := svc.Summary(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Daily.Completed)
	assert.True(t, second.GoalReached)
	assert.Equal(t, 1, second.StreakDays)

	svc.Close()
	_, err = f.store.StartDelivery(ctx, rider.ID, "Baraka|50")
	require.NoError(t, err)
	_, err = cache.Get(ctx, "progress:"+rider.ID+":2026-03-10")
	assert.NoError(t, err, "closed service no longer invalidates")
	assert.True(t, strings.HasPrefix(progressKey(rider.ID, f.clock.Now()), progressKeyPrefix(rider.ID)))
}

// completingSource completes a delivery while the summary is being computed.
type completingSource struct {
	*UserStore
	t          *testing.T
	deliveryID string
}

func (c *completingSource) DeliveryHistory(ctx context.Context, userID string) ([]*domain.Delivery, error) {
	history, err := c.UserStore.DeliveryHistory(ctx, userID)
	if c.deliveryID != "" {
		_, cerr := c.UserStore.CompleteDelivery(ctx, c.deliveryID, "ok")
		require.NoError(c.t, cerr)
		c.deliveryID = ""
	}
	return history, err
}

func TestProgressService_DoesNotCacheSummaryOverlappingAnEvent(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture(t)
	rider := f.addRider(t, "rider", "123", 1)
	d, err := f.store.StartDelivery(ctx, rider.ID, "Asha|100")
	require.NoError(t, err)

	src := &completingSource{UserStore: f.store, t: t, deliveryID: d.ID}
	cache := inmem.NewCache(time.Minute)
	svc := NewProgressService(src, cache, f.store.Events(), logger.Nop())
	defer svc.Close()

	stale, err := svc.Summary(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stale.Daily.Completed)

	_, err = cache.Get(ctx, progressKey(rider.ID, f.clock.Now()))
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	fresh, err := svc.Summary(ctx, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Daily.Completed)

	_, err = cache.Get(ctx, progressKey(rider.ID, f.clock.Now()))
	assert.NoError(t, err, "a summary with no overlapping event is cached")
}
