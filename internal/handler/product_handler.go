package handler

import (
	"net/http"

	"vanphal/internal/catalog"
	"vanphal/internal/model"
	"vanphal/internal/recipe"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// ProductHandler serves the public storefront catalogue.
type ProductHandler struct {
	catalog *catalog.Service
	recipes *recipe.Client
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(cat *catalog.Service, recipes *recipe.Client, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		recipes: recipes,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := []model.Product{}
		for _, p := range products {
			for _, c := range p.Categories {
				if c == category {
					filtered = append(filtered, p)
					break
				}
			}
		}
		products = filtered
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, err := h.catalog.ProductByID(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Offers handles GET /api/offers: only active offers are shown to shoppers.
func (h *ProductHandler) Offers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	offers, err := h.catalog.Offers(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	active := []model.Offer{}
	for _, o := range offers {
		if o.IsActive {
			active = append(active, o)
		}
	}
	writeJSON(w, http.StatusOK, active)
}

// Settings handles GET /api/settings.
func (h *ProductHandler) Settings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	settings, err := h.catalog.Settings(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Recipes handles GET /api/products/:id/recipes. The external call degrades
// to an empty list; it never fails the request.
func (h *ProductHandler) Recipes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, err := h.catalog.ProductByID(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	suggestions := h.recipes.Suggest(r.Context(), product.Name)
	if suggestions == nil {
		suggestions = []model.RecipeSuggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
