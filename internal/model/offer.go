package model

// Offer is a code-redeemable discount rule. Codes are stored upper-cased and
// matched case-insensitively. When ProductID is set the discount applies only
// to cart lines for that product.
type Offer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	Discount    int    `json:"discount"`
	IsActive    bool   `json:"isActive"`
	BannerImage string `json:"bannerImage,omitempty"`
	ProductID   string `json:"productId,omitempty"`
}

// AppliedOffer is an offer resolved against a concrete cart, carrying the
// computed discount amount for receipt display.
type AppliedOffer struct {
	Offer
	DiscountAmount int64 `json:"discountCalculated"`
}
