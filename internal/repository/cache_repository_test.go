package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())

	var dest map[string]any
	err := repo.Get(ctx, "planner:plan:1", &dest)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "planner:plan:1", map[string]any{"status": "scheduled"}, time.Minute))

	deleted, err := repo.DeleteByPattern(ctx, "planner:plan:*")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
