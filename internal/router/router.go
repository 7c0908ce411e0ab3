package router

import (
	"github.com/antonminaichev/flower-shop/internal/analytics"
	"github.com/antonminaichev/flower-shop/internal/cart"
	"github.com/antonminaichev/flower-shop/internal/catalog"
	"github.com/antonminaichev/flower-shop/internal/content"
	"github.com/antonminaichev/flower-shop/internal/logger"
	"github.com/antonminaichev/flower-shop/internal/metrics"
	"github.com/antonminaichev/flower-shop/internal/middleware"
	"github.com/antonminaichev/flower-shop/internal/order"
	"github.com/antonminaichev/flower-shop/internal/user"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	userH *user.Handler,
	catalogH *catalog.Handler,
	cartH *cart.Handler,
	orderH *order.Handler,
	analyticsH *analytics.Handler,
	contentH *content.Handler,
	jwtSecret []byte,
	userRepo middleware.LoginResolver,
	m *metrics.ServerMetrics,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)
	r.Use(m.Middleware)

	r.Use(middleware.GzipHandler)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/login", userH.Login)
	})

	// Публичная часть каталога и статичные страницы.
	r.Get("/api/catalog", catalogH.ListProducts)
	r.Get("/api/catalog/{productID}", catalogH.ProductDetail)
	r.Get("/api/catalog/{productID}/reviews", catalogH.ListReviews)
	r.Get("/api/content/payment", contentH.PaymentInfo)
	r.Get("/api/content/delivery", contentH.DeliveryInfo)
	r.Get("/api/content/about", contentH.AboutCompany)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(jwtSecret, userRepo))

		r.Get("/api/user/profile", userH.GetProfile)
		r.Put("/api/user/profile", userH.UpdateProfile)

		r.Get("/api/user/favorites", catalogH.ListFavorites)
		r.Post("/api/catalog/{productID}/favorite", catalogH.ToggleFavorite)
		r.Delete("/api/user/favorites/{favoriteID}", catalogH.RemoveFavorite)
		r.Post("/api/catalog/{productID}/reviews", catalogH.AddReview)

		r.Get("/api/user/cart", cartH.ViewCart)
		r.Post("/api/user/cart/{productID}", cartH.AddToCart)
		r.Patch("/api/user/cart/items/{itemID}", cartH.UpdateItem)
		r.Delete("/api/user/cart/items/{itemID}", cartH.RemoveItem)
		r.Post("/api/user/cart/repeat/{orderID}", cartH.AddOrderToCart)

		r.Post("/api/user/orders/checkout", orderH.Checkout)
		r.Get("/api/user/orders", orderH.ListOrders)

		r.Post("/api/reports", analyticsH.CreateReport)
		r.Get("/api/reports", analyticsH.ListReports)
	})

	return r
}
