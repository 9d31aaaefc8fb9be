package auth

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_Revocation(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", 1, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "jti-1", 1, time.Now().Add(time.Hour)), "revoking twice is a no-op")
	require.NoError(t, repo.Revoke(ctx, "jti-old", 1, time.Now().Add(-time.Minute)))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked, "expired revocations no longer matter")

	n, err := repo.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
