package geocoding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func setupCache(t *testing.T, next Geocoder) (*Cached, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCached(next, client, time.Hour, 10*time.Minute), mr
}

func TestCached_HitAfterMiss(t *testing.T) {
	next := new(mockGeocoder)
	want := &Result{Latitude: -37.81, Longitude: 144.96, DisplayName: "Melbourne"}
	next.On("Geocode", mock.Anything, "1 Collins St").Return(want, nil).Once()

	c, mr := setupCache(t, next)

	got, err := c.Geocode(context.Background(), "1 Collins St")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Same address with different spacing and case shares the entry.
	got, err = c.Geocode(context.Background(), "1  collins ST ")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	next.AssertExpectations(t)
	assert.True(t, mr.Exists("geocode:1 collins st"))
	assert.Equal(t, time.Hour, mr.TTL("geocode:1 collins st"))
}

func TestCached_NegativeEntry(t *testing.T) {
	next := new(mockGeocoder)
	next.On("Geocode", mock.Anything, "nowhere").Return(nil, ErrNotFound).Once()

	c, mr := setupCache(t, next)

	_, err := c.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	next.AssertExpectations(t)
	assert.Equal(t, 10*time.Minute, mr.TTL("geocode:nowhere"))
}

func TestCached_ServiceErrorsAreNotCached(t *testing.T) {
	next := new(mockGeocoder)
	serr := &ServiceError{Provider: "test", Status: 502}
	next.On("Geocode", mock.Anything, "flaky").Return(nil, serr).Twice()

	c, mr := setupCache(t, next)

	for i := 0; i < 2; i++ {
		_, err := c.Geocode(context.Background(), "flaky")
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	}
	next.AssertExpectations(t)
	assert.False(t, mr.Exists("geocode:flaky"))
}

func TestCached_CorruptEntryFallsThrough(t *testing.T) {
	next := new(mockGeocoder)
	want := &Result{Latitude: 1, Longitude: 2}
	next.On("Geocode", mock.Anything, "x").Return(want, nil).Once()

	c, mr := setupCache(t, next)
	require.NoError(t, mr.Set("geocode:x", "{not json"))

	got, err := c.Geocode(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	next.AssertExpectations(t)
}

func TestCached_RedisDownDegradesToProvider(t *testing.T) {
	next := new(mockGeocoder)
	want := &Result{Latitude: 1, Longitude: 2}
	next.On("Geocode", mock.Anything, "y").Return(want, nil).Once()

	c, mr := setupCache(t, next)
	mr.Close()

	got, err := c.Geocode(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCached_EmptyAddress(t *testing.T) {
	c, _ := setupCache(t, new(mockGeocoder))
	_, err := c.Geocode(context.Background(), " \t ")
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
