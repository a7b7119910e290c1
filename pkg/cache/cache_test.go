package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraCache "sidehustle-backend/internal/infrastructure/cache"
	"sidehustle-backend/pkg/cache"
)

type profile struct {
	Name string `json:"name"`
}

func TestGetOrLoadCachesResult(t *testing.T) {
	ctx := context.Background()
	c := infraCache.NewMemoryCache()

	calls := 0
	load := func(context.Context) (*profile, error) {
		calls++
		return &profile{Name: "ada"}, nil
	}

	for i := 0; i < 3; i++ {
		p, err := cache.GetOrLoad(ctx, c, "profile:1", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "ada", p.Name)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := infraCache.NewMemoryCache()
	missing := errors.New("missing")

	_, err := cache.GetOrLoad(ctx, c, "profile:2", time.Minute, func(context.Context) (*profile, error) {
		return nil, missing
	})
	require.ErrorIs(t, err, missing)

	var p profile
	found, err := c.Get(ctx, "profile:2", &p)
	require.NoError(t, err)
	assert.False(t, found)
}
