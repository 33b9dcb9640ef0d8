package model

// SiteSettings holds presentation configuration managed from the back office.
type SiteSettings struct {
	HeroImages []string `json:"heroImages"`
}

// RecipeSuggestion is one serving idea returned by the external recipe
// service for a given product.
type RecipeSuggestion struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Steps             []string `json:"steps"`
	PairingSuggestion string   `json:"pairingSuggestion,omitempty"`
}
