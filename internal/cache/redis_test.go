package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissLoadsAndPopulates(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			loads++
			dest.ID = 7
			dest.Name = "loaded"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, "user:7", &first, time.Minute, load(&first)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "loaded", first.Name)

	// Second read is served from the cache.
	var second cachedUser
	require.NoError(t, Aside(ctx, "user:7", &second, time.Minute, load(&second)))
	assert.Equal(t, 1, loads)
	assert.Equal(t, "loaded", second.Name)

	assert.True(t, mr.Exists("user:7"))
}

func TestAside_CorruptEntryFallsBackToLoader(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("user:9", "{not json"))

	var out cachedUser
	err := Aside(ctx, "user:9", &out, time.Minute, func() error {
		out.ID = 9
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 9, out.ID)
}

func TestAside_NoClientRunsLoaderEveryTime(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	loads := 0
	for i := 0; i < 2; i++ {
		var out cachedUser
		require.NoError(t, Aside(ctx, "user:1", &out, time.Minute, func() error {
			loads++
			return nil
		}))
	}
	assert.Equal(t, 2, loads)
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	var out cachedUser
	require.NoError(t, Aside(ctx, UserKey(3), &out, time.Minute, func() error {
		out.ID = 3
		return nil
	}))
	require.True(t, mr.Exists(UserKey(3)))

	InvalidateUser(ctx, 3)
	assert.False(t, mr.Exists(UserKey(3)))
}
