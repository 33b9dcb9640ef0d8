package cart

import (
	"context"
	"fmt"
	"sync"

	"vanphal/internal/catalog"
	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
)

// Service owns the cart lines of every shopper. Each mutation persists the
// full line collection synchronously so a reconnecting client reconstructs
// the same basket. Carts are keyed per user; within one user's cart the same
// product never appears on more than one line.
type Service struct {
	store   store.Store
	catalog *catalog.Service
	logger  zerolog.Logger
	mu      sync.Mutex
}

// NewService creates a new cart service.
func NewService(st store.Store, cat *catalog.Service, logger zerolog.Logger) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		logger:  logger.With().Str("service", "cart").Logger(),
	}
}

// Items returns the user's cart lines, empty if none.
func (s *Service) Items(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	if _, err := s.store.Load(ctx, store.CartKey(userID), &items); err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

// AddItem adds quantity units of a product to the user's cart. If a line for
// the product already exists its quantity is incremented, never duplicated.
// A quantity below 1 is rejected.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.CartItem{Product: *product, Quantity: quantity})
	}

	if err := s.save(ctx, userID, items); err != nil {
		return err
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")

	return nil
}

// UpdateQuantity sets a line's quantity exactly. A quantity below 1 removes
// the line instead of leaving a zero-quantity entry behind.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, userID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx, userID)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID == productID {
			items[i].Quantity = quantity
			return s.save(ctx, userID, items)
		}
	}
	return nil
}

// RemoveItem deletes a line; removing an absent product is not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Items(ctx, userID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	return s.save(ctx, userID, kept)
}

// Subtotal returns the sum of unit price times quantity over all lines.
// An empty cart has subtotal 0.
func (s *Service) Subtotal(ctx context.Context, userID string) (int64, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return 0, err
	}
	return model.CartSubtotal(items), nil
}

// Clear empties the user's cart. Called once, immediately after an order is
// successfully assembled.
func (s *Service) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, store.CartKey(userID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Msg("cart cleared")
	return nil
}

// Restore overwrites the user's cart with the given lines. The order service
// uses it to put a basket back when persisting the order half of a checkout
// fails after the cart was already touched.
func (s *Service) Restore(ctx context.Context, userID string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, userID, items)
}

func (s *Service) save(ctx context.Context, userID string, items []model.CartItem) error {
	if err := s.store.Save(ctx, store.CartKey(userID), items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
