package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vanphal/internal/model"
	"vanphal/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := store.NewMemoryStore()

	cfg := Config{
		ProductsFile: writeSeedFile(t, dir, "products.json",
			`[{"id":"jam-1","name":"Wild Apricot Jam","price":499}]`),
		OffersFile: writeSeedFile(t, dir, "offers.json",
			`[{"id":"o1","code":"SPRING25","discount":25,"isActive":true}]`),
		CategoriesFile: writeSeedFile(t, dir, "categories.json",
			`["Jams","Chutneys"]`),
	}

	require.NoError(t, Run(ctx, st, cfg, NewFileLoader(zerolog.Nop()), zerolog.Nop()))

	var products []model.Product
	found, err := st.Load(ctx, store.KeyProducts, &products)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, products, 1)
	assert.Equal(t, "jam-1", products[0].ID)

	var offers []model.Offer
	_, err = st.Load(ctx, store.KeyOffers, &offers)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "SPRING25", offers[0].Code)

	var categories []string
	_, err = st.Load(ctx, store.KeyCategories, &categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jams", "Chutneys"}, categories)

	var settings model.SiteSettings
	found, err = st.Load(ctx, store.KeySiteSettings, &settings)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRun_NeverOverwritesExistingCollections(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := store.NewMemoryStore()

	existing := []model.Product{{ID: "kept", Name: "Kept Product", Price: 100}}
	require.NoError(t, st.Save(ctx, store.KeyProducts, existing))

	cfg := Config{
		ProductsFile: writeSeedFile(t, dir, "products.json",
			`[{"id":"replacement","name":"Replacement","price":1}]`),
	}
	require.NoError(t, Run(ctx, st, cfg, NewFileLoader(zerolog.Nop()), zerolog.Nop()))

	var products []model.Product
	_, err := st.Load(ctx, store.KeyProducts, &products)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "kept", products[0].ID)
}

func TestRun_MissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	cfg := Config{
		ProductsFile:   "does/not/exist/products.json",
		OffersFile:     "does/not/exist/offers.json",
		CategoriesFile: "does/not/exist/categories.json",
	}
	require.NoError(t, Run(ctx, st, cfg, NewFileLoader(zerolog.Nop()), zerolog.Nop()))

	var products []model.Product
	found, err := st.Load(ctx, store.KeyProducts, &products)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, products)

	// Categories fall back to the defaults rather than nothing.
	var categories []string
	_, err = st.Load(ctx, store.KeyCategories, &categories)
	require.NoError(t, err)
	assert.Equal(t, defaultCategories, categories)
}

func TestRun_MalformedFileFails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := store.NewMemoryStore()

	cfg := Config{
		ProductsFile: writeSeedFile(t, dir, "products.json", `{not json`),
	}
	err := Run(ctx, st, cfg, NewFileLoader(zerolog.Nop()), zerolog.Nop())
	assert.Error(t, err)
}

// stubLoader returns canned bytes or an error, keyed by path.
type stubLoader struct {
	data map[string][]byte
	err  error
}

func (l *stubLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if l.err != nil {
		return nil, l.err
	}
	raw, ok := l.data[path]
	if !ok {
		return nil, errors.New("no such object")
	}
	return raw, nil
}

func TestFallbackLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("Prefers S3", func(t *testing.T) {
		s3 := &stubLoader{data: map[string][]byte{"seed/products.json": []byte(`from-s3`)}}
		local := &stubLoader{data: map[string][]byte{"products.json": []byte(`from-disk`)}}

		loader := NewFallbackLoader(s3, local, "seed/", true, zerolog.Nop())
		raw, err := loader.Load(ctx, "products.json")
		require.NoError(t, err)
		assert.Equal(t, "from-s3", string(raw))
	})

	t.Run("Falls back to disk on S3 failure", func(t *testing.T) {
		s3 := &stubLoader{err: errors.New("s3 unavailable")}
		local := &stubLoader{data: map[string][]byte{"products.json": []byte(`from-disk`)}}

		loader := NewFallbackLoader(s3, local, "seed/", true, zerolog.Nop())
		raw, err := loader.Load(ctx, "products.json")
		require.NoError(t, err)
		assert.Equal(t, "from-disk", string(raw))
	})

	t.Run("S3 disabled goes straight to disk", func(t *testing.T) {
		s3 := &stubLoader{data: map[string][]byte{"seed/products.json": []byte(`from-s3`)}}
		local := &stubLoader{data: map[string][]byte{"products.json": []byte(`from-disk`)}}

		loader := NewFallbackLoader(s3, local, "seed/", false, zerolog.Nop())
		raw, err := loader.Load(ctx, "products.json")
		require.NoError(t, err)
		assert.Equal(t, "from-disk", string(raw))
	})
}
