package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(Reset)
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{Name: "O+", Count: 3}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "test:key", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "O+", first.Name)

	// Second call must be served from the cache.
	var second payload
	require.NoError(t, Aside(ctx, "test:key", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest payload
	err := Aside(ctx, "test:key", &dest, time.Minute, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("test:key"))
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	Reset()

	fetches := 0
	var dest payload
	err := Aside(context.Background(), "test:key", &dest, time.Minute, func() error {
		fetches++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, fetches)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(RequestKey(7), `{"name":"x"}`))
	require.NoError(t, mr.Set(RequestsListKey, `[]`))

	InvalidateRequest(ctx, 7)
	InvalidateRequestsList(ctx)

	assert.False(t, mr.Exists(RequestKey(7)))
	assert.False(t, mr.Exists(RequestsListKey))
}
