package repository

import (
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_CreateAndFind(t *testing.T) {
	repo := NewCartRepository(store.SetupTestStore())

	item := &model.CartItem{UserID: 1, ProductID: 10, Quantity: 2}
	require.NoError(t, repo.Create(item))
	assert.NotZero(t, item.ID)

	found, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Quantity)
}

func TestCartRepository_FindByUserID(t *testing.T) {
	repo := NewCartRepository(store.SetupTestStore())

	require.NoError(t, repo.Create(&model.CartItem{UserID: 1, ProductID: 10, Quantity: 1}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: 2, ProductID: 10, Quantity: 1}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: 1, ProductID: 11, Quantity: 3}))

	items, err := repo.FindByUserID(1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint(10), items[0].ProductID)
	assert.Equal(t, uint(11), items[1].ProductID)
}

func TestCartRepository_FindByUserAndProduct(t *testing.T) {
	repo := NewCartRepository(store.SetupTestStore())

	require.NoError(t, repo.Create(&model.CartItem{UserID: 1, ProductID: 10, Quantity: 2}))

	found, err := repo.FindByUserAndProduct(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Quantity)

	_, err = repo.FindByUserAndProduct(1, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.FindByUserAndProduct(2, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository(store.SetupTestStore())

	item := &model.CartItem{UserID: 1, ProductID: 10, Quantity: 1}
	require.NoError(t, repo.Create(item))

	removed, err := repo.Delete(item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	repo := NewCartRepository(store.SetupTestStore())

	require.NoError(t, repo.Create(&model.CartItem{UserID: 1, ProductID: 10, Quantity: 1}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: 1, ProductID: 11, Quantity: 1}))
	require.NoError(t, repo.Create(&model.CartItem{UserID: 2, ProductID: 10, Quantity: 1}))

	count, err := repo.DeleteByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err := repo.FindByUserID(1)
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := repo.FindByUserID(2)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
