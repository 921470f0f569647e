package cachemanager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type alignInput struct {
	Text string
}

func newCountingCache(t *testing.T) (*ReadThroughCache[string, int, alignInput], *int) {
	t.Helper()
	calls := 0
	cache := NewInMemoryCacheManager[string, int]("lengths", DefaultExpiration, DefaultCleanupInterval)
	rtc := NewReadThroughCache[string, int, alignInput](
		cache,
		func(ctx context.Context, input alignInput) (int, error) {
			calls++
			return len(input.Text), nil
		},
	)
	return rtc, &calls
}

func TestReadThroughCache_Get_ComputesOnce(t *testing.T) {
	rtc, calls := newCountingCache(t)

	for range 3 {
		got, err := rtc.Get(context.Background(), "k", alignInput{Text: "hello"}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, 5, got)
	}
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_GetWithRefresh_ComputesOnce(t *testing.T) {
	rtc, calls := newCountingCache(t)

	for range 2 {
		got, err := rtc.GetWithRefresh(context.Background(), "k", alignInput{Text: "abc"}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, 3, got)
	}
	require.Equal(t, 1, *calls)
}

func TestReadThroughCache_Get_ErrorIsNotCached(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("lengths", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, int, alignInput](
		cache,
		func(ctx context.Context, input alignInput) (int, error) {
			calls++
			return 0, errors.New("boom")
		},
	)

	_, err := rtc.Get(context.Background(), "k", alignInput{}, time.Minute)
	require.EqualError(t, err, "boom")
	_, err = rtc.Get(context.Background(), "k", alignInput{}, time.Minute)
	require.Error(t, err)
	require.Equal(t, 2, calls)

	_, ok := cache.Get(context.Background(), "k")
	require.False(t, ok)
}

func TestReadThroughCache_ConcurrentMissesComputeOnce(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("lengths", DefaultExpiration, DefaultCleanupInterval)
	var calls atomic.Int32
	release := make(chan struct{})
	rtc := NewReadThroughCache[string, int, alignInput](
		cache,
		func(ctx context.Context, input alignInput) (int, error) {
			calls.Add(1)
			<-release
			return len(input.Text), nil
		},
	)

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = rtc.Get(context.Background(), "k", alignInput{Text: "hello"}, time.Minute)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, got := range results {
		require.Equal(t, 5, got)
	}
}
