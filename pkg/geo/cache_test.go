package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCache_Eviction(t *testing.T) {
	c := NewCache(2)

	c.Put("1.1.1.1", models.GeoInfo{Country: "A"})
	c.Put("2.2.2.2", models.GeoInfo{Country: "B"})

	// touch 1.1.1.1 so 2.2.2.2 is the oldest
	_, ok := c.Get("1.1.1.1")
	require.True(t, ok)

	c.Put("3.3.3.3", models.GeoInfo{Country: "C"})

	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("2.2.2.2")
	assert.False(t, ok)

	info, ok := c.Get("1.1.1.1")
	assert.True(t, ok)
	assert.Equal(t, "A", info.Country)

	c.Put("1.1.1.1", models.GeoInfo{Country: "Z"})
	info, _ = c.Get("1.1.1.1")
	assert.Equal(t, "Z", info.Country)
	assert.Equal(t, 2, c.Len())
}

func TestNewCache_DefaultCapacity(t *testing.T) {
	c := NewCache(0)

	for i := 0; i < DefaultCacheSize+10; i++ {
		c.Put(fmt.Sprintf("203.0.%d.%d", i/256, i%256), models.GeoInfo{Country: "X"})
	}

	assert.Equal(t, DefaultCacheSize, c.Len())
}

func TestCache_GetOrLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lookup := NewMockLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "8.8.8.8").Return(models.GeoInfo{Country: "United States", ISP: "Google"}, nil).Times(1)

	c := NewCache(16)

	for i := 0; i < 3; i++ {
		info, err := c.GetOrLookup(context.Background(), "8.8.8.8", lookup)
		require.NoError(t, err)
		assert.Equal(t, "Google", info.ISP)
	}

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestCache_GetOrLookupConcurrentMissesShareLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lookup := NewMockLookup(ctrl)
	lookup.EXPECT().Lookup(gomock.Any(), "1.1.1.1").DoAndReturn(
		func(context.Context, string) (models.GeoInfo, error) {
			time.Sleep(50 * time.Millisecond)
			return models.GeoInfo{Country: "Australia"}, nil
		}).Times(1)

	c := NewCache(16)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			info, err := c.GetOrLookup(context.Background(), "1.1.1.1", lookup)
			assert.NoError(t, err)
			assert.Equal(t, "Australia", info.Country)
		}()
	}

	wg.Wait()
}

func TestCache_FailuresNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lookup := NewMockLookup(ctrl)

	gomock.InOrder(
		lookup.EXPECT().Lookup(gomock.Any(), "9.9.9.9").Return(models.GeoInfo{}, errors.New("rate limited")),
		lookup.EXPECT().Lookup(gomock.Any(), "9.9.9.9").Return(models.GeoInfo{Country: "Switzerland"}, nil),
	)

	c := NewCache(16)

	_, err := c.GetOrLookup(context.Background(), "9.9.9.9", lookup)
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	info, err := c.GetOrLookup(context.Background(), "9.9.9.9", lookup)
	require.NoError(t, err)
	assert.Equal(t, "Switzerland", info.Country)
}
