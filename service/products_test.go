package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/truemediaorg/crosspostfields/database/db"
)

func TestCrosspostedProductID(t *testing.T) {
	t.Run("prefers the recorded crosspost", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindCrosspost", mock.Anything, db.ObjectKindPost, int64(8), int64(3)).Return(&db.CrosspostMap{DestID: 80}, nil)
		sites := new(MockDestinations)
		sites.On("SiteID", mock.Anything, shop).Return(int64(3), nil)

		id, err := NewProductService(store, sites).CrosspostedProductID(context.TODO(), 8, shop)
		require.NoError(t, err)
		assert.Equal(t, int64(80), id)
		store.AssertNumberOfCalls(t, "GetProductSKU", 0)
	})

	t.Run("falls back to matching the sku", func(t *testing.T) {
		client := new(MockDestinationClient)
		client.On("FindProductBySKU", mock.Anything, "TSHIRT-1").Return(int64(81), nil)
		store := new(MockStore)
		store.On("FindCrosspost", mock.Anything, db.ObjectKindPost, int64(8), int64(3)).Return((*db.CrosspostMap)(nil), nil)
		store.On("GetProductSKU", mock.Anything, int64(8)).Return("TSHIRT-1", nil)
		sites := new(MockDestinations)
		sites.On("SiteID", mock.Anything, shop).Return(int64(3), nil)
		sites.On("Client", mock.Anything, shop).Return(client, nil)

		id, err := NewProductService(store, sites).CrosspostedProductID(context.TODO(), 8, shop)
		require.NoError(t, err)
		assert.Equal(t, int64(81), id)
	})

	t.Run("products without a sku aren't found", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindCrosspost", mock.Anything, db.ObjectKindPost, int64(8), int64(3)).Return((*db.CrosspostMap)(nil), nil)
		store.On("GetProductSKU", mock.Anything, int64(8)).Return("", nil)
		sites := new(MockDestinations)
		sites.On("SiteID", mock.Anything, shop).Return(int64(3), nil)

		id, err := NewProductService(store, sites).CrosspostedProductID(context.TODO(), 8, shop)
		require.NoError(t, err)
		assert.Equal(t, int64(0), id)
		sites.AssertNumberOfCalls(t, "Client", 0)
	})
}

func TestCrosspostedID(t *testing.T) {
	store := new(MockStore)
	store.On("FindCrosspost", mock.Anything, db.ObjectKindPost, int64(5), int64(3)).Return(&db.CrosspostMap{DestID: 50}, nil)
	store.On("FindCrosspost", mock.Anything, db.ObjectKindPost, int64(6), int64(3)).Return((*db.CrosspostMap)(nil), nil)
	content := NewContentService(store)

	id, err := content.CrosspostedID(context.TODO(), 5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(50), id)

	id, err = content.CrosspostedID(context.TODO(), 6, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}
