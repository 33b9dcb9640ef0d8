package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
)

// Service owns the product, category, offer and site-settings collections.
// The cart and coupon modules only ever read from it; orders never mutate
// stock. All read-modify-write cycles are serialised by a single mutex so the
// collections behave like the one-writer store they replace.
type Service struct {
	store  store.Store
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewService creates a new catalogue service.
func NewService(st store.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// Products returns all catalogue products.
func (s *Service) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if _, err := s.store.Load(ctx, store.KeyProducts, &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// ProductByID returns a single product, or ErrProductNotFound.
func (s *Service) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, model.ErrProductNotFound
}

// AddProduct prepends a product to the catalogue.
func (s *Service) AddProduct(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}

	products = append([]model.Product{p}, products...)
	if err := s.store.Save(ctx, store.KeyProducts, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product added")
	return nil
}

// UpdateProduct replaces the product with the same ID.
func (s *Service) UpdateProduct(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			found = true
			break
		}
	}
	if !found {
		return model.ErrProductNotFound
	}

	if err := s.store.Save(ctx, store.KeyProducts, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

// DeleteProduct removes a product; deleting an absent ID is not an error.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := s.store.Save(ctx, store.KeyProducts, kept); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

// Categories returns the category name list.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if _, err := s.store.Load(ctx, store.KeyCategories, &categories); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// AddCategory appends a trimmed, non-duplicate category name.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c == trimmed {
			return nil
		}
	}

	categories = append(categories, trimmed)
	if err := s.store.Save(ctx, store.KeyCategories, categories); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// RenameCategory renames a category and rewrites the membership of every
// product that referenced the old name.
func (s *Service) RenameCategory(ctx context.Context, oldName, newName string) error {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" || trimmed == oldName {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	for i, c := range categories {
		if c == oldName {
			categories[i] = trimmed
		}
	}
	if err := s.store.Save(ctx, store.KeyCategories, categories); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range products {
		for j, c := range products[i].Categories {
			if c == oldName {
				products[i].Categories[j] = trimmed
				changed = true
			}
		}
	}
	if changed {
		if err := s.store.Save(ctx, store.KeyProducts, products); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}
	}

	s.logger.Info().Str("old", oldName).Str("new", trimmed).Msg("category renamed")
	return nil
}

// DeleteCategory removes a category and strips it from product memberships.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	kept := categories[:0]
	for _, c := range categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	if err := s.store.Save(ctx, store.KeyCategories, kept); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	products, err := s.Products(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range products {
		memberships := products[i].Categories[:0]
		for _, c := range products[i].Categories {
			if c != name {
				memberships = append(memberships, c)
			} else {
				changed = true
			}
		}
		products[i].Categories = memberships
	}
	if changed {
		if err := s.store.Save(ctx, store.KeyProducts, products); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}
	}
	return nil
}

// Offers returns all offers, active or not.
func (s *Service) Offers(ctx context.Context) ([]model.Offer, error) {
	var offers []model.Offer
	if _, err := s.store.Load(ctx, store.KeyOffers, &offers); err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	if offers == nil {
		offers = []model.Offer{}
	}
	return offers, nil
}

// AddOffer prepends an offer. Codes are stored upper-cased so redemption can
// match case-insensitively.
func (s *Service) AddOffer(ctx context.Context, o model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.Code = strings.ToUpper(strings.TrimSpace(o.Code))

	offers, err := s.Offers(ctx)
	if err != nil {
		return err
	}

	offers = append([]model.Offer{o}, offers...)
	if err := s.store.Save(ctx, store.KeyOffers, offers); err != nil {
		return fmt.Errorf("failed to save offers: %w", err)
	}

	s.logger.Info().Str("offer_id", o.ID).Str("code", o.Code).Msg("offer added")
	return nil
}

// UpdateOffer replaces the offer with the same ID.
func (s *Service) UpdateOffer(ctx context.Context, o model.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.Code = strings.ToUpper(strings.TrimSpace(o.Code))

	offers, err := s.Offers(ctx)
	if err != nil {
		return err
	}
	for i := range offers {
		if offers[i].ID == o.ID {
			offers[i] = o
			if err := s.store.Save(ctx, store.KeyOffers, offers); err != nil {
				return fmt.Errorf("failed to save offers: %w", err)
			}
			return nil
		}
	}
	return model.ErrInvalidCoupon
}

// DeleteOffer removes an offer by ID.
func (s *Service) DeleteOffer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.Offers(ctx)
	if err != nil {
		return err
	}
	kept := offers[:0]
	for _, o := range offers {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if err := s.store.Save(ctx, store.KeyOffers, kept); err != nil {
		return fmt.Errorf("failed to save offers: %w", err)
	}
	return nil
}

// ToggleOffer flips an offer's active flag.
func (s *Service) ToggleOffer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers, err := s.Offers(ctx)
	if err != nil {
		return err
	}
	for i := range offers {
		if offers[i].ID == id {
			offers[i].IsActive = !offers[i].IsActive
			if err := s.store.Save(ctx, store.KeyOffers, offers); err != nil {
				return fmt.Errorf("failed to save offers: %w", err)
			}
			return nil
		}
	}
	return model.ErrInvalidCoupon
}

// Settings returns the site settings, empty if never saved.
func (s *Service) Settings(ctx context.Context) (model.SiteSettings, error) {
	var settings model.SiteSettings
	if _, err := s.store.Load(ctx, store.KeySiteSettings, &settings); err != nil {
		return model.SiteSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings replaces the site settings.
func (s *Service) UpdateSettings(ctx context.Context, settings model.SiteSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, store.KeySiteSettings, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
