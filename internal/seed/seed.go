package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
)

// Config names the seed files to load on first boot.
type Config struct {
	ProductsFile   string
	OffersFile     string
	CategoriesFile string
}

// defaultCategories is used when no categories seed file is available.
var defaultCategories = []string{"Jams", "Preserves", "Chutneys", "Seasonal", "Organic"}

// Run populates the catalogue collections that are still empty. Collections
// already present in the store are never overwritten, so re-running at every
// startup is safe. A missing or unreadable seed file downgrades to a warning:
// an empty catalogue is a valid (if bare) storefront.
func Run(ctx context.Context, st store.Store, cfg Config, loader Loader, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "seeder").Logger()

	if err := seedCollection[model.Product](ctx, st, store.KeyProducts, cfg.ProductsFile, loader, logger); err != nil {
		return err
	}
	if err := seedCollection[model.Offer](ctx, st, store.KeyOffers, cfg.OffersFile, loader, logger); err != nil {
		return err
	}

	var categories []string
	found, err := st.Load(ctx, store.KeyCategories, &categories)
	if err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if !found {
		categories = defaultCategories
		if cfg.CategoriesFile != "" {
			if raw, err := loader.Load(ctx, cfg.CategoriesFile); err != nil {
				logger.Warn().Err(err).Str("file", cfg.CategoriesFile).Msg("seed file unavailable, using defaults")
			} else if err := json.Unmarshal(raw, &categories); err != nil {
				return fmt.Errorf("failed to decode seed file %s: %w", cfg.CategoriesFile, err)
			}
		}
		if err := st.Save(ctx, store.KeyCategories, categories); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		logger.Info().Int("count", len(categories)).Msg("categories seeded")
	}

	var settings model.SiteSettings
	found, err = st.Load(ctx, store.KeySiteSettings, &settings)
	if err != nil {
		return fmt.Errorf("failed to check site settings: %w", err)
	}
	if !found {
		if err := st.Save(ctx, store.KeySiteSettings, model.SiteSettings{HeroImages: []string{}}); err != nil {
			return fmt.Errorf("failed to seed site settings: %w", err)
		}
	}

	return nil
}

func seedCollection[T any](ctx context.Context, st store.Store, key, file string, loader Loader, logger zerolog.Logger) error {
	var existing []T
	found, err := st.Load(ctx, key, &existing)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", key, err)
	}
	if found {
		logger.Debug().Str("key", key).Msg("collection already present, skipping seed")
		return nil
	}
	if file == "" {
		return nil
	}

	raw, err := loader.Load(ctx, file)
	if err != nil {
		logger.Warn().Err(err).Str("file", file).Msg("seed file unavailable, starting empty")
		return st.Save(ctx, key, []T{})
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", file, err)
	}

	if err := st.Save(ctx, key, items); err != nil {
		return fmt.Errorf("failed to seed %s: %w", key, err)
	}

	logger.Info().Str("key", key).Int("count", len(items)).Msg("collection seeded")
	return nil
}
