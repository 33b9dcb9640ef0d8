package model

// Nutrition holds the per-jar nutrition facts printed on the label.
type Nutrition struct {
	Calories string `json:"calories"`
	Fat      string `json:"fat"`
	Sugar    string `json:"sugar"`
	Protein  string `json:"protein"`
}

// Product represents a catalogue entry. Prices are whole rupees; stock is
// informational only and is never decremented by order placement.
type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Price              int64     `json:"price"`
	Weight             string    `json:"weight,omitempty"`
	DiscountPercentage int       `json:"discountPercentage,omitempty"`
	Image              string    `json:"image,omitempty"`
	Images             []string  `json:"images,omitempty"`
	Categories         []string  `json:"categories"`
	Ingredients        []string  `json:"ingredients,omitempty"`
	Nutrition          Nutrition `json:"nutrition,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
	IsNew              bool      `json:"isNew,omitempty"`
	IsBestSeller       bool      `json:"isBestSeller,omitempty"`
	Stock              int       `json:"stock"`
}

// InStock reports whether the product can currently be added to a basket.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
