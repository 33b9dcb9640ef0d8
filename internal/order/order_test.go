package order

import (
	"context"
	"errors"
	"testing"

	"vanphal/internal/cart"
	"vanphal/internal/catalog"
	"vanphal/internal/coupon"
	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUser = model.User{
		ID:    "user-1",
		Name:  "Tara Negi",
		Email: "tara@example.com",
		Role:  model.RoleCustomer,
	}

	testAddress = model.ShippingAddress{
		Name:    "Tara Negi",
		Email:   "tara@example.com",
		Phone:   "9876543210",
		Address: "14 Orchard Lane",
		City:    "Shimla",
		State:   "Himachal Pradesh",
		Zip:     "171001",
		Country: "India",
	}
)

type fixture struct {
	orders *Service
	cart   *cart.Service
	store  store.Store
}

func newFixture(t *testing.T, st store.Store) *fixture {
	t.Helper()

	ctx := context.Background()
	products := []model.Product{
		{ID: "jam-1", Name: "Wild Apricot Jam", Price: 499, Stock: 10},
		{ID: "chutney-1", Name: "Plum Chutney", Price: 699, Stock: 5},
	}
	offers := []model.Offer{
		{ID: "o1", Title: "Spring Sale", Code: "SPRING25", Discount: 25, IsActive: true},
		{ID: "o2", Title: "Everything Free", Code: "FREE150", Discount: 150, IsActive: true},
	}
	require.NoError(t, st.Save(ctx, store.KeyProducts, products))
	require.NoError(t, st.Save(ctx, store.KeyOffers, offers))

	cat := catalog.NewService(st, zerolog.Nop())
	cartSvc := cart.NewService(st, cat, zerolog.Nop())
	resolver := coupon.NewResolver(cat, zerolog.Nop())

	return &fixture{
		orders: NewService(st, cartSvc, resolver, zerolog.Nop()),
		cart:   cartSvc,
		store:  st,
	}
}

func (f *fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cart.AddItem(ctx, testUser.ID, "jam-1", 2))
	require.NoError(t, f.cart.AddItem(ctx, testUser.ID, "chutney-1", 1))
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("Without coupon", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())
		f.fillCart(t)

		placed, err := f.orders.Place(ctx, &testUser, testAddress, "")
		require.NoError(t, err)

		assert.NotEmpty(t, placed.ID)
		assert.Equal(t, testUser.ID, placed.UserID)
		assert.Equal(t, int64(1697), placed.Subtotal)
		assert.Equal(t, int64(0), placed.DiscountAmount)
		assert.Equal(t, int64(1697), placed.Total)
		assert.Equal(t, model.StatusPending, placed.Status)
		assert.Len(t, placed.Items, 2)

		// Cart is empty afterwards.
		items, err := f.cart.Items(ctx, testUser.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("With coupon", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())
		f.fillCart(t)

		placed, err := f.orders.Place(ctx, &testUser, testAddress, "spring25")
		require.NoError(t, err)

		// 25% of 1697 rounds half-up to 424.
		assert.Equal(t, int64(1697), placed.Subtotal)
		assert.Equal(t, int64(424), placed.DiscountAmount)
		assert.Equal(t, "SPRING25", placed.CouponCode)
		assert.Equal(t, int64(1273), placed.Total)
	})

	t.Run("Discount never drives total negative", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())
		f.fillCart(t)

		placed, err := f.orders.Place(ctx, &testUser, testAddress, "FREE150")
		require.NoError(t, err)
		assert.Equal(t, int64(0), placed.Total)
	})

	t.Run("Invalid coupon aborts the checkout", func(t *testing.T) {
		f := newFixture(t, store.NewMemoryStore())
		f.fillCart(t)

		_, err := f.orders.Place(ctx, &testUser, testAddress, "NOSUCHCODE")
		assert.ErrorIs(t, err, model.ErrInvalidCoupon)

		// Cart untouched, no order recorded.
		items, err := f.cart.Items(ctx, testUser.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		orders, err := f.orders.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Guards", func(t *testing.T) {
		blocked := testUser
		blocked.IsBlocked = true
		incomplete := testAddress
		incomplete.Zip = ""

		tests := []struct {
			name     string
			user     *model.User
			address  model.ShippingAddress
			fillCart bool
			expected error
		}{
			{"Nil user", nil, testAddress, true, model.ErrUnauthenticated},
			{"Blocked user", &blocked, testAddress, true, model.ErrAccountBlocked},
			{"Incomplete shipping", &testUser, incomplete, true, model.ErrIncompleteShipping},
			{"Empty cart", &testUser, testAddress, false, model.ErrEmptyCart},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, store.NewMemoryStore())
				if tt.fillCart {
					f.fillCart(t)
				}

				_, err := f.orders.Place(ctx, tt.user, tt.address, "")
				assert.ErrorIs(t, err, tt.expected)
			})
		}
	})
}

func TestService_Place_SnapshotIsImmutable(t *testing.T) {
	// Later cart activity must not reach through into a placed order.
	ctx := context.Background()
	f := newFixture(t, store.NewMemoryStore())
	f.fillCart(t)

	placed, err := f.orders.Place(ctx, &testUser, testAddress, "")
	require.NoError(t, err)

	require.NoError(t, f.cart.AddItem(ctx, testUser.ID, "jam-1", 9))

	got, err := f.orders.Get(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	for _, item := range got.Items {
		if item.ID == "jam-1" {
			assert.Equal(t, 2, item.Quantity)
		}
	}
}

func TestNewOrderID_Unique(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := newOrderID()
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

// failingDeleteStore wraps a real store but refuses deletes, simulating a
// backend fault between recording the order and clearing the cart.
type failingDeleteStore struct {
	store.Store
}

func (f *failingDeleteStore) Delete(ctx context.Context, key string) error {
	return errors.New("backend unavailable")
}

func TestService_Place_RollsBackWhenCartClearFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &failingDeleteStore{Store: store.NewMemoryStore()})
	f.fillCart(t)

	_, err := f.orders.Place(ctx, &testUser, testAddress, "")
	require.Error(t, err)

	// The order list was rolled back; cart and orders never diverge.
	orders, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	items, err := f.cart.Items(ctx, testUser.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestService_ListByUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemoryStore())
	f.fillCart(t)

	placed, err := f.orders.Place(ctx, &testUser, testAddress, "")
	require.NoError(t, err)

	other := testUser
	other.ID = "user-2"
	require.NoError(t, f.cart.AddItem(ctx, other.ID, "jam-1", 1))
	_, err = f.orders.Place(ctx, &other, testAddress, "")
	require.NoError(t, err)

	mine, err := f.orders.ListByUser(ctx, testUser.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, placed.ID, mine[0].ID)

	all, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Get_NotFound(t *testing.T) {
	f := newFixture(t, store.NewMemoryStore())

	_, err := f.orders.Get(context.Background(), "ORD-missing")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	place := func(t *testing.T) (*fixture, string) {
		f := newFixture(t, store.NewMemoryStore())
		f.fillCart(t)
		placed, err := f.orders.Place(ctx, &testUser, testAddress, "")
		require.NoError(t, err)
		return f, placed.ID
	}

	t.Run("Forward transitions", func(t *testing.T) {
		f, id := place(t)

		updated, err := f.orders.UpdateStatus(ctx, id, model.StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, model.StatusShipped, updated.Status)

		updated, err = f.orders.UpdateStatus(ctx, id, model.StatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, updated.Status)
	})

	t.Run("Cancellation", func(t *testing.T) {
		f, id := place(t)

		_, err := f.orders.UpdateStatus(ctx, id, model.StatusCancelled)
		require.NoError(t, err)
	})

	t.Run("Rejected transitions", func(t *testing.T) {
		tests := []struct {
			name string
			path []model.OrderStatus
			next model.OrderStatus
		}{
			{"Skip to delivered", nil, model.StatusDelivered},
			{"Backward from shipped", []model.OrderStatus{model.StatusShipped}, model.StatusPending},
			{"Out of delivered", []model.OrderStatus{model.StatusShipped, model.StatusDelivered}, model.StatusCancelled},
			{"Out of cancelled", []model.OrderStatus{model.StatusCancelled}, model.StatusShipped},
			{"Unknown status", nil, model.OrderStatus("misplaced")},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f, id := place(t)
				for _, step := range tt.path {
					_, err := f.orders.UpdateStatus(ctx, id, step)
					require.NoError(t, err)
				}

				_, err := f.orders.UpdateStatus(ctx, id, tt.next)
				assert.ErrorIs(t, err, model.ErrInvalidTransition)
			})
		}
	})

	t.Run("Unknown order", func(t *testing.T) {
		f, _ := place(t)
		_, err := f.orders.UpdateStatus(ctx, "ORD-missing", model.StatusShipped)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

func TestService_SetTracking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, store.NewMemoryStore())
	f.fillCart(t)

	placed, err := f.orders.Place(ctx, &testUser, testAddress, "")
	require.NoError(t, err)

	updated, err := f.orders.SetTracking(ctx, placed.ID, "TRK123", "https://track.example.com/TRK123")
	require.NoError(t, err)
	assert.Equal(t, "TRK123", updated.TrackingID)
	assert.Equal(t, "https://track.example.com/TRK123", updated.TrackingURL)

	_, err = f.orders.SetTracking(ctx, "ORD-missing", "TRK123", "")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
