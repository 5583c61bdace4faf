package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressRepository_CRUD(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAddressRepository(pool, zerolog.Nop())
	ctx := context.Background()

	home := &model.ShippingAddress{ID: uuid.New(), UserID: "user-1", ShippingDetails: testShipping()}
	require.NoError(t, repo.Create(ctx, home))
	assert.False(t, home.CreatedAt.IsZero())

	work := &model.ShippingAddress{ID: uuid.New(), UserID: "user-1", ShippingDetails: testShipping()}
	work.Type = model.AddressTypeWork
	work.Line1 = "Tech Park"
	require.NoError(t, repo.Create(ctx, work))

	addresses, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, work.ID, addresses[0].ID, "newest first")
	assert.Equal(t, model.AddressTypeWork, addresses[0].Type)

	home.City = "Mysuru"
	require.NoError(t, repo.Update(ctx, home))

	addresses, err = repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Mysuru", addresses[1].City)

	t.Run("Update of another user's address", func(t *testing.T) {
		stolen := *home
		stolen.UserID = "user-2"
		assert.Equal(t, model.ErrAddressNotFound, repo.Update(ctx, &stolen))
	})

	t.Run("Delete of another user's address", func(t *testing.T) {
		assert.Equal(t, model.ErrAddressNotFound, repo.Delete(ctx, "user-2", home.ID))
	})

	require.NoError(t, repo.Delete(ctx, "user-1", home.ID))
	assert.Equal(t, model.ErrAddressNotFound, repo.Delete(ctx, "user-1", home.ID))

	addresses, err = repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}

func TestAddressRepository_RejectsUnknownType(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAddressRepository(pool, zerolog.Nop())

	addr := &model.ShippingAddress{ID: uuid.New(), UserID: "user-1", ShippingDetails: testShipping()}
	addr.Type = "Holiday"

	assert.Error(t, repo.Create(context.Background(), addr))
}
