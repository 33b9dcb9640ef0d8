package router

import (
	"net/http"

	"vanphal/internal/account"
	"vanphal/internal/handler"
	"vanphal/internal/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// wrap adapts an httprouter.Handle to http.Handler so per-route middleware
// like the login rate limiter can sit in front of it.
func wrap(h httprouter.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h(w, r, httprouter.ParamsFromContext(r.Context()))
	})
}

// New creates the HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	ticketHandler *handler.TicketHandler,
	adminHandler *handler.AdminHandler,
	accounts *account.Service,
	loginLimiter *middleware.RateLimiter,
	logger zerolog.Logger,
) http.Handler {
	router := httprouter.New()
	router.SaveMatchedRoutePath = false

	// Health check endpoint (no authentication required)
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Auth — login and register sit behind the per-IP rate limiter.
	router.Handler(http.MethodPost, "/api/auth/login", loginLimiter.Limit(wrap(authHandler.Login)))
	router.Handler(http.MethodPost, "/api/auth/register", loginLimiter.Limit(wrap(authHandler.Register)))
	router.POST("/api/auth/logout", authHandler.Logout)
	router.GET("/api/auth/me", authHandler.Me)
	router.PUT("/api/auth/profile", authHandler.UpdateProfile)

	// Public storefront
	router.GET("/api/products", productHandler.List)
	router.GET("/api/products/:id", productHandler.Get)
	router.GET("/api/products/:id/recipes", productHandler.Recipes)
	router.GET("/api/categories", productHandler.Categories)
	router.GET("/api/offers", productHandler.Offers)
	router.GET("/api/settings", productHandler.Settings)

	// Cart and checkout (authenticated)
	router.GET("/api/cart", cartHandler.Get)
	router.POST("/api/cart/items", cartHandler.AddItem)
	router.PUT("/api/cart/items/:productId", cartHandler.UpdateQuantity)
	router.DELETE("/api/cart/items/:productId", cartHandler.RemoveItem)
	router.POST("/api/cart/coupon", cartHandler.ApplyCoupon)
	router.POST("/api/checkout", orderHandler.Checkout)
	router.GET("/api/orders", orderHandler.ListMine)
	router.GET("/api/orders/:id", orderHandler.Get)

	// Support tickets
	router.POST("/api/tickets", ticketHandler.Create)
	router.GET("/api/tickets", ticketHandler.ListMine)
	router.POST("/api/tickets/:id/replies", ticketHandler.Reply)
	router.POST("/api/tickets/:id/read", ticketHandler.MarkRead)

	// Back office
	router.POST("/api/admin/products", adminHandler.CreateProduct)
	router.PUT("/api/admin/products/:id", adminHandler.UpdateProduct)
	router.DELETE("/api/admin/products/:id", adminHandler.DeleteProduct)
	router.POST("/api/admin/categories", adminHandler.AddCategory)
	router.PUT("/api/admin/categories", adminHandler.RenameCategory)
	router.DELETE("/api/admin/categories/:name", adminHandler.DeleteCategory)
	router.GET("/api/admin/offers", adminHandler.ListOffers)
	router.POST("/api/admin/offers", adminHandler.CreateOffer)
	router.PUT("/api/admin/offers/:id", adminHandler.UpdateOffer)
	router.DELETE("/api/admin/offers/:id", adminHandler.DeleteOffer)
	router.POST("/api/admin/offers/:id/toggle", adminHandler.ToggleOffer)
	router.PUT("/api/admin/settings", adminHandler.UpdateSettings)
	router.GET("/api/admin/orders", adminHandler.ListOrders)
	router.PUT("/api/admin/orders/:id/status", adminHandler.UpdateOrderStatus)
	router.PUT("/api/admin/orders/:id/tracking", adminHandler.UpdateOrderTracking)
	router.GET("/api/admin/users", adminHandler.ListUsers)
	router.PUT("/api/admin/users/:id/blocked", adminHandler.SetUserBlocked)
	router.DELETE("/api/admin/users/:id", adminHandler.DeleteUser)
	router.GET("/api/admin/tickets", adminHandler.ListTickets)
	router.POST("/api/admin/tickets/:id/close", adminHandler.CloseTicket)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Session-Token"},
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session
	var h http.Handler = router
	h = middleware.Session(accounts)(h)
	h = corsOptions.Handler(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
