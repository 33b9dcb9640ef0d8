package cart

import (
	"context"
	"testing"

	"vanphal/internal/catalog"
	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	st := store.NewMemoryStore()
	products := []model.Product{
		{ID: "jam-1", Name: "Wild Apricot Jam", Price: 499, Stock: 10},
		{ID: "chutney-1", Name: "Plum Chutney", Price: 699, Stock: 5},
	}
	require.NoError(t, st.Save(context.Background(), store.KeyProducts, products))

	cat := catalog.NewService(st, zerolog.Nop())
	return NewService(st, cat, zerolog.Nop()), st
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("New line snapshots the product", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))

		items, err := svc.Items(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "jam-1", items[0].ID)
		assert.Equal(t, "Wild Apricot Jam", items[0].Name)
		assert.Equal(t, int64(499), items[0].Price)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Same product accumulates on one line", func(t *testing.T) {
		svc, _ := newTestService(t)

		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))
		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 3))

		items, err := svc.Items(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("Unknown product", func(t *testing.T) {
		svc, _ := newTestService(t)

		err := svc.AddItem(ctx, testUserID, "no-such-product", 1)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Quantity below one is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		assert.ErrorIs(t, svc.AddItem(ctx, testUserID, "jam-1", 0), model.ErrInvalidQuantity)
		assert.ErrorIs(t, svc.AddItem(ctx, testUserID, "jam-1", -4), model.ErrInvalidQuantity)

		items, err := svc.Items(ctx, testUserID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets the quantity exactly", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))

		require.NoError(t, svc.UpdateQuantity(ctx, testUserID, "jam-1", 7))

		items, err := svc.Items(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Quantity)
	})

	t.Run("Zero or negative removes the line", func(t *testing.T) {
		for _, quantity := range []int{0, -1} {
			svc, _ := newTestService(t)
			require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))
			require.NoError(t, svc.AddItem(ctx, testUserID, "chutney-1", 1))

			require.NoError(t, svc.UpdateQuantity(ctx, testUserID, "jam-1", quantity))

			items, err := svc.Items(ctx, testUserID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "chutney-1", items[0].ID)
		}
	})

	t.Run("Absent product is a no-op", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))

		require.NoError(t, svc.UpdateQuantity(ctx, testUserID, "chutney-1", 3))

		items, err := svc.Items(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))
	require.NoError(t, svc.AddItem(ctx, testUserID, "chutney-1", 1))

	require.NoError(t, svc.RemoveItem(ctx, testUserID, "jam-1"))

	items, err := svc.Items(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "chutney-1", items[0].ID)

	// Removing an absent product is not an error.
	require.NoError(t, svc.RemoveItem(ctx, testUserID, "jam-1"))
}

func TestService_Subtotal(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty cart is zero", func(t *testing.T) {
		svc, _ := newTestService(t)

		subtotal, err := svc.Subtotal(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), subtotal)
	})

	t.Run("Sums price times quantity", func(t *testing.T) {
		svc, _ := newTestService(t)
		require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))     // 998
		require.NoError(t, svc.AddItem(ctx, testUserID, "chutney-1", 1)) // 699

		subtotal, err := svc.Subtotal(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, int64(1697), subtotal)
	})
}

func TestService_Persistence(t *testing.T) {
	// A second service over the same store sees the same cart, the way a
	// reconnecting client does.
	ctx := context.Background()
	svc, st := newTestService(t)

	require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))

	reloaded := NewService(st, catalog.NewService(st, zerolog.Nop()), zerolog.Nop())
	items, err := reloaded.Items(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestService_CartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddItem(ctx, "user-a", "jam-1", 1))
	require.NoError(t, svc.AddItem(ctx, "user-b", "chutney-1", 4))

	itemsA, err := svc.Items(ctx, "user-a")
	require.NoError(t, err)
	itemsB, err := svc.Items(ctx, "user-b")
	require.NoError(t, err)

	require.Len(t, itemsA, 1)
	require.Len(t, itemsB, 1)
	assert.Equal(t, "jam-1", itemsA[0].ID)
	assert.Equal(t, "chutney-1", itemsB[0].ID)
}

func TestService_ClearAndRestore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddItem(ctx, testUserID, "jam-1", 2))
	saved, err := svc.Items(ctx, testUserID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, testUserID))
	items, err := svc.Items(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.Restore(ctx, testUserID, saved))
	items, err = svc.Items(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
