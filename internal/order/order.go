package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vanphal/internal/cart"
	"vanphal/internal/coupon"
	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service assembles immutable orders out of a cart snapshot, a resolved
// coupon and a shipping address, and owns the administrative status machine
// afterwards. Customers never mutate an order once placed.
type Service struct {
	store   store.Store
	cart    *cart.Service
	coupons *coupon.Resolver
	logger  zerolog.Logger
	mu      sync.Mutex
}

// NewService creates a new order service.
func NewService(st store.Store, cartSvc *cart.Service, resolver *coupon.Resolver, logger zerolog.Logger) *Service {
	return &Service{
		store:   st,
		cart:    cartSvc,
		coupons: resolver,
		logger:  logger.With().Str("service", "order").Logger(),
	}
}

// newOrderID returns a fresh, globally unique order identifier. UUIDs keep
// collisions effectively impossible regardless of how many orders exist.
func newOrderID() string {
	return "ORD-" + uuid.NewString()
}

// Place runs the checkout pipeline for an authenticated, non-blocked user:
// snapshot the cart, resolve the coupon (if any), validate the shipping
// address, persist the order and clear the cart. Persisting and clearing are
// atomic from the user's perspective: if the cart cannot be cleared the
// recorded order is rolled back, so the two never diverge.
func (s *Service) Place(ctx context.Context, user *model.User, address model.ShippingAddress, couponCode string) (*model.Order, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}
	if user.IsBlocked {
		return nil, model.ErrAccountBlocked
	}
	if !address.Complete() {
		return nil, model.ErrIncompleteShipping
	}

	items, err := s.cart.Items(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	subtotal := model.CartSubtotal(items)

	var applied *model.AppliedOffer
	if couponCode != "" {
		applied, err = s.coupons.Apply(ctx, couponCode, items)
		if err != nil {
			return nil, err
		}
	}

	var discount int64
	var appliedCode string
	if applied != nil {
		discount = applied.DiscountAmount
		appliedCode = applied.Code
	}

	// A misconfigured discount must never drive the total negative.
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	// items came fresh out of the store's JSON decode, so the order holds
	// its own copy and later cart mutations cannot reach it.
	newOrder := model.Order{
		ID:             newOrderID(),
		UserID:         user.ID,
		UserName:       user.Name,
		Email:          address.Email,
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		CouponCode:     appliedCode,
		Total:          total,
		Status:         model.StatusPending,
		Channel:        "DTC",
		Shipping:       address,
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	updated := append([]model.Order{newOrder}, orders...)
	if err := s.store.Save(ctx, store.KeyOrders, updated); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.cart.Clear(ctx, user.ID); err != nil {
		// Roll the order back rather than leave it recorded against a cart
		// that still holds the items.
		if rbErr := s.store.Save(ctx, store.KeyOrders, orders); rbErr != nil {
			s.logger.Error().Err(rbErr).Str("order_id", newOrder.ID).Msg("failed to roll back order after cart clear failure")
		}
		return nil, fmt.Errorf("failed to clear cart after order placement: %w", err)
	}

	s.logger.Info().
		Str("order_id", newOrder.ID).
		Str("user_id", user.ID).
		Int64("subtotal", subtotal).
		Int64("discount", discount).
		Int64("total", total).
		Msg("order placed")

	return &newOrder, nil
}

// Get returns a single order, or ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id string) (*model.Order, error) {
	orders, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, model.ErrOrderNotFound
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	mine := []model.Order{}
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

// ListAll returns every order for the back office, newest first.
func (s *Service) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.all(ctx)
}

// UpdateStatus performs an administrative status transition. Moves that skip
// forward, go backward or leave a terminal state fail with
// ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, id string, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, model.ErrInvalidTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if !orders[i].Status.CanTransitionTo(next) {
			s.logger.Warn().
				Str("order_id", id).
				Str("from", string(orders[i].Status)).
				Str("to", string(next)).
				Msg("rejected status transition")
			return nil, model.ErrInvalidTransition
		}
		orders[i].Status = next
		if err := s.store.Save(ctx, store.KeyOrders, orders); err != nil {
			return nil, fmt.Errorf("failed to save orders: %w", err)
		}
		s.logger.Info().Str("order_id", id).Str("status", string(next)).Msg("order status updated")
		return &orders[i], nil
	}
	return nil, model.ErrOrderNotFound
}

// SetTracking records the carrier tracking identifier and URL on an order.
func (s *Service) SetTracking(ctx context.Context, id, trackingID, trackingURL string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		orders[i].TrackingID = trackingID
		orders[i].TrackingURL = trackingURL
		if err := s.store.Save(ctx, store.KeyOrders, orders); err != nil {
			return nil, fmt.Errorf("failed to save orders: %w", err)
		}
		return &orders[i], nil
	}
	return nil, model.ErrOrderNotFound
}

func (s *Service) all(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if _, err := s.store.Load(ctx, store.KeyOrders, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}
