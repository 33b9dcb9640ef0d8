package integration

import (
	"context"
	"testing"

	"vanphal/internal/account"
	"vanphal/internal/cart"
	"vanphal/internal/catalog"
	"vanphal/internal/coupon"
	"vanphal/internal/model"
	"vanphal/internal/order"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()

	t.Run("Missing key reports not found", func(t *testing.T) {
		var products []model.Product
		found, err := testDB.Store.Load(ctx, "never-saved", &products)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Round trip and overwrite", func(t *testing.T) {
		saved := []model.Product{{ID: "jam-1", Name: "Wild Apricot Jam", Price: 499}}
		require.NoError(t, testDB.Store.Save(ctx, store.KeyProducts, saved))

		var loaded []model.Product
		found, err := testDB.Store.Load(ctx, store.KeyProducts, &loaded)
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, loaded, 1)
		assert.Equal(t, "jam-1", loaded[0].ID)

		saved[0].Price = 549
		require.NoError(t, testDB.Store.Save(ctx, store.KeyProducts, saved))
		_, err = testDB.Store.Load(ctx, store.KeyProducts, &loaded)
		require.NoError(t, err)
		assert.Equal(t, int64(549), loaded[0].Price)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, testDB.Store.Save(ctx, store.CartKey("user-1"),
			[]model.CartItem{{Product: model.Product{ID: "jam-1"}, Quantity: 1}}))
		require.NoError(t, testDB.Store.Delete(ctx, store.CartKey("user-1")))

		var items []model.CartItem
		found, err := testDB.Store.Load(ctx, store.CartKey("user-1"), &items)
		require.NoError(t, err)
		assert.False(t, found)

		// Deleting an absent key is not an error.
		require.NoError(t, testDB.Store.Delete(ctx, store.CartKey("user-1")))
	})
}

func TestCheckoutPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	require.NoError(t, testDB.Store.Save(ctx, store.KeyProducts, []model.Product{
		{ID: "jam-1", Name: "Wild Apricot Jam", Price: 499, Stock: 10},
		{ID: "chutney-1", Name: "Plum Chutney", Price: 699, Stock: 5},
	}))
	require.NoError(t, testDB.Store.Save(ctx, store.KeyOffers, []model.Offer{
		{ID: "o1", Title: "Spring Sale", Code: "SPRING25", Discount: 25, IsActive: true},
	}))

	accounts := account.NewService(testDB.Store, logger)
	require.NoError(t, accounts.EnsureReservedAccounts(ctx))

	catalogSvc := catalog.NewService(testDB.Store, logger)
	cartSvc := cart.NewService(testDB.Store, catalogSvc, logger)
	resolver := coupon.NewResolver(catalogSvc, logger)
	orderSvc := order.NewService(testDB.Store, cartSvc, resolver, logger)

	token, user, err := accounts.Login(ctx, account.ReservedDemoEmail, "user@123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, cartSvc.AddItem(ctx, user.ID, "jam-1", 2))
	require.NoError(t, cartSvc.AddItem(ctx, user.ID, "chutney-1", 1))

	placed, err := orderSvc.Place(ctx, user, model.ShippingAddress{
		Name: "Himalayan Explorer", Phone: "9876543210", Address: "14 Orchard Lane",
		City: "Shimla", State: "Himachal Pradesh", Zip: "171001", Country: "India",
	}, "SPRING25")
	require.NoError(t, err)

	assert.Equal(t, int64(1697), placed.Subtotal)
	assert.Equal(t, int64(424), placed.DiscountAmount)
	assert.Equal(t, int64(1273), placed.Total)

	// The cart was cleared and the order is durable.
	items, err := cartSvc.Items(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	got, err := orderSvc.Get(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// The session survives on the durable store too.
	resolved, err := accounts.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}
