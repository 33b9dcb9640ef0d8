package coupon

import (
	"context"
	"strings"

	"vanphal/internal/catalog"
	"vanphal/internal/model"

	"github.com/rs/zerolog"
)

// Resolver validates a user-entered coupon code against the offer collection
// and computes the discount for a concrete set of cart lines. Only one coupon
// is active per checkout; applying a second code replaces the first rather
// than stacking.
type Resolver struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewResolver creates a new coupon resolver.
func NewResolver(cat *catalog.Service, logger zerolog.Logger) *Resolver {
	return &Resolver{
		catalog: cat,
		logger:  logger.With().Str("service", "coupon").Logger(),
	}
}

// Normalize trims surrounding whitespace and upper-cases a user-entered code.
// Offer codes are stored upper-cased, so normalised input compares directly.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// roundHalfUpPercent computes amount*percent/100 rounded half-up to the
// nearest whole currency unit. Both inputs are non-negative, so the integer
// form (n + 50) / 100 is exact: 424.25 rounds to 424, 424.5 rounds to 425.
func roundHalfUpPercent(amount int64, percent int) int64 {
	return (amount*int64(percent) + 50) / 100
}

// Apply resolves a code against the given cart lines.
//
// An unknown or deactivated code fails with ErrInvalidCoupon; the two cases
// are deliberately indistinguishable to the caller. A valid code restricted
// to a product absent from the cart fails with ErrCouponNotApplicable, which
// carries a different user-facing message. The discount is rounded once, not
// per line, and the cart itself is never mutated.
func (r *Resolver) Apply(ctx context.Context, code string, items []model.CartItem) (*model.AppliedOffer, error) {
	normalized := Normalize(code)

	offers, err := r.catalog.Offers(ctx)
	if err != nil {
		return nil, err
	}

	var offer *model.Offer
	for i := range offers {
		if offers[i].Code == normalized && offers[i].IsActive {
			offer = &offers[i]
			break
		}
	}
	if offer == nil {
		r.logger.Debug().Str("code", normalized).Msg("coupon unknown or inactive")
		return nil, model.ErrInvalidCoupon
	}

	target := model.CartSubtotal(items)
	if offer.ProductID != "" {
		target = 0
		for i := range items {
			if items[i].ID == offer.ProductID {
				target += items[i].LineTotal()
			}
		}
		if target == 0 {
			r.logger.Debug().
				Str("code", normalized).
				Str("product_id", offer.ProductID).
				Msg("coupon product not in cart")
			return nil, model.ErrCouponNotApplicable
		}
	}

	discount := roundHalfUpPercent(target, offer.Discount)

	r.logger.Info().
		Str("code", normalized).
		Int64("target_subtotal", target).
		Int64("discount", discount).
		Msg("coupon applied")

	return &model.AppliedOffer{Offer: *offer, DiscountAmount: discount}, nil
}
