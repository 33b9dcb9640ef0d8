package store

import "context"

// Well-known storage keys. The layout mirrors the key-value "tables" the
// storefront has always used; carts and sessions get a suffix per user or
// token since the server handles many shoppers at once.
const (
	KeyRegisteredUsers = "registered-users"
	KeyOrders          = "admin-orders"
	KeyOffers          = "admin-offers"
	KeyProducts        = "admin-products"
	KeyCategories      = "admin-categories"
	KeyTickets         = "support-tickets"
	KeySiteSettings    = "site-settings"

	cartPrefix    = "cart-items:"
	sessionPrefix = "session:"
)

// CartKey returns the storage key for a user's cart lines.
func CartKey(userID string) string {
	return cartPrefix + userID
}

// SessionKey returns the storage key for a session token.
func SessionKey(token string) string {
	return sessionPrefix + token
}

// Store is the durable key-value boundary behind every entity collection.
// Values are JSON-encoded. Load reports found=false for a missing key rather
// than an error so callers can fall back to an empty collection.
type Store interface {
	Load(ctx context.Context, key string, into any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}
