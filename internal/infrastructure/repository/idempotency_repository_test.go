package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Client: "10.0.0.1", Endpoint: "POST /api/v1/products",
		ResponseCode: 201, ResponseBody: `{"success":true}`, ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k2", Client: "10.0.0.1", Endpoint: "POST /api/v1/products",
		ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "k1", "10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "k1", "10.0.0.2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Client: "10.0.0.1", Endpoint: "POST /api/v1/ledger",
		ResponseCode: 422, ExpiresAt: time.Now().Add(time.Hour),
	}))
	got, err = repo.GetByKey(ctx, "k1", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 422, got.ResponseCode)
	assert.Equal(t, "POST /api/v1/ledger", got.Endpoint)

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
