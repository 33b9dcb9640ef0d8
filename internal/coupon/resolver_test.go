package coupon

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

func newTestResolver(t *testing.T, offers []model.Offer) *Resolver {
	t.Helper()

	st := store.NewMemoryStore()
	require.NoError(t, st.Save(context.Background(), store.KeyOffers, offers))

	cat := catalog.NewService(st, zerolog.Nop())
	return NewResolver(cat, zerolog.Nop())
}

func cartOf(items ...model.CartItem) []model.CartItem {
	return items
}

func line(id string, price int64, qty int) model.CartItem {
	return model.CartItem{
		Product:  model.Product{ID: id, Name: id, Price: price},
		Quantity: qty,
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SPRING25", Normalize("  spring25 "))
	assert.Equal(t, "SPRING25", Normalize("SPRING25"))
	assert.Equal(t, "", Normalize("   "))
}

func TestRoundHalfUpPercent(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		percent  int
		expected int64
	}{
		{"Exact quarter rounds down", 1697, 25, 424}, // 424.25
		{"Half rounds up", 150, 25, 38},              // 37.5
		{"Whole result", 400, 25, 100},
		{"Zero amount", 0, 50, 0},
		{"Full discount", 400, 100, 400},
		{"Over 100 percent", 400, 150, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, roundHalfUpPercent(tt.amount, tt.percent))
		})
	}
}

func TestResolver_Apply_StoreWide(t *testing.T) {
	resolver := newTestResolver(t, []model.Offer{
		{ID: "o1", Title: "Spring Sale", Code: "SPRING25", Discount: 25, IsActive: true},
	})

	items := cartOf(line("p1", 400, 1))

	applied, err := resolver.Apply(context.Background(), "spring25", items)
	require.NoError(t, err)
	assert.Equal(t, int64(100), applied.DiscountAmount)
	assert.Equal(t, "SPRING25", applied.Code)
	assert.Equal(t, "Spring Sale", applied.Title)
}

func TestResolver_Apply_EndToEndRounding(t *testing.T) {
	// Cart: 499 x 2 + 699 x 1 = 1697; 25% of 1697 = 424.25, half-up -> 424.
	resolver := newTestResolver(t, []model.Offer{
		{ID: "o1", Title: "Spring Sale", Code: "SPRING25", Discount: 25, IsActive: true},
	})

	items := cartOf(line("A", 499, 2), line("B", 699, 1))
	require.Equal(t, int64(1697), model.CartSubtotal(items))

	applied, err := resolver.Apply(context.Background(), "SPRING25", items)
	require.NoError(t, err)
	assert.Equal(t, int64(424), applied.DiscountAmount)
	assert.Equal(t, int64(1273), model.CartSubtotal(items)-applied.DiscountAmount)
}

func TestResolver_Apply_ProductRestricted(t *testing.T) {
	offers := []model.Offer{
		{ID: "o1", Title: "Jam Lovers", Code: "JAMONLY", Discount: 50, IsActive: true, ProductID: "jam-1"},
	}

	t.Run("Product in cart", func(t *testing.T) {
		resolver := newTestResolver(t, offers)
		items := cartOf(line("jam-1", 200, 2), line("chutney-1", 300, 1))

		applied, err := resolver.Apply(context.Background(), "jamonly", items)
		require.NoError(t, err)
		// Only the jam lines count: 50% of 400.
		assert.Equal(t, int64(200), applied.DiscountAmount)
	})

	t.Run("Product not in cart", func(t *testing.T) {
		resolver := newTestResolver(t, offers)
		items := cartOf(line("chutney-1", 300, 1))

		applied, err := resolver.Apply(context.Background(), "JAMONLY", items)
		assert.Nil(t, applied)
		assert.ErrorIs(t, err, model.ErrCouponNotApplicable)
		// The cart itself is untouched.
		assert.Equal(t, int64(300), model.CartSubtotal(items))
	})
}

func TestResolver_Apply_InvalidCodes(t *testing.T) {
	resolver := newTestResolver(t, []model.Offer{
		{ID: "o1", Code: "ACTIVE10", Discount: 10, IsActive: true},
		{ID: "o2", Code: "RETIRED20", Discount: 20, IsActive: false},
	})

	items := cartOf(line("p1", 100, 1))

	tests := []struct {
		name string
		code string
	}{
		{"Unknown code", "NOSUCHCODE"},
		{"Inactive code", "RETIRED20"},
		{"Empty code", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, err := resolver.Apply(context.Background(), tt.code, items)
			assert.Nil(t, applied)
			assert.ErrorIs(t, err, model.ErrInvalidCoupon)
		})
	}
}

func TestResolver_Apply_DistinctErrors(t *testing.T) {
	// An inactive code and a mismatched restriction must surface different
	// user-facing messages.
	assert.NotEqual(t, model.ErrInvalidCoupon.Message, model.ErrCouponNotApplicable.Message)
	assert.NotEqual(t, model.ErrInvalidCoupon.Code, model.ErrCouponNotApplicable.Code)
}
