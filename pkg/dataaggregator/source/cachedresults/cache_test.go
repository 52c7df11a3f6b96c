package cachedresults

import (
	"context"
	"errors"
	"testing"

	"github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitmerge/pkg/ctdf"
)

type memoryCache struct {
	values map[any]string
}

func (m *memoryCache) Get(ctx context.Context, key any) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", errors.New("value not found")
	}
	return value, nil
}

func (m *memoryCache) Set(ctx context.Context, key any, object string, options ...store.Option) error {
	m.values[key] = object
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key any) error {
	delete(m.values, key)
	return nil
}

func (m *memoryCache) Invalidate(ctx context.Context, options ...store.InvalidateOption) error {
	return nil
}

func (m *memoryCache) Clear(ctx context.Context) error {
	m.values = map[any]string{}
	return nil
}

func (m *memoryCache) GetType() string {
	return "memory"
}

func TestCacheRoundTrip(t *testing.T) {
	c := &Cache{Cache: &memoryCache{values: map[any]string{}}}
	ctx := context.Background()

	_, ok := c.Get(ctx, "plan:a|b")
	assert.False(t, ok)

	price := 450.0
	itineraries := []*ctdf.AggregatedItinerary{
		ctdf.NewSingleLegItinerary(&ctdf.TransitLeg{Mode: ctdf.TransportModeBus, Identifier: "K0", DurationMinutes: 300, Price: &price}),
	}
	require.NoError(t, c.Set(ctx, "plan:a|b", itineraries))

	cached, ok := c.Get(ctx, "plan:a|b")
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "K0", cached[0].Legs[0].Identifier)
	assert.Equal(t, 300, cached[0].RankKey)
	assert.Equal(t, 450.0, *cached[0].Legs[0].Price)
}

func TestCacheDiscardsUnreadable(t *testing.T) {
	c := &Cache{Cache: &memoryCache{values: map[any]string{"plan:x": "{not json"}}}

	_, ok := c.Get(context.Background(), "plan:x")
	assert.False(t, ok)
}
