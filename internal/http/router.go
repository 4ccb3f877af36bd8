package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Auth     *AuthMiddleware
	Cart     *CartHandler
	Promo    *PromoHandler
	Checkout *CheckoutHandler
	Products *ProductHandler
	Orders   *OrdersHandler
	Media    *MediaHandler

	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(deps.Auth.Identify)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Post("/", deps.Cart.AddItem)
			r.Delete("/", deps.Cart.ClearCart)
			r.Put("/items/{id}", deps.Cart.UpdateItem)
			r.Delete("/items/{id}", deps.Cart.RemoveItem)
		})

		r.Post("/promocodes/validate", deps.Promo.Validate)
		r.Post("/checkout", deps.Checkout.Checkout)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.List)
			r.Get("/{slug}", deps.Products.GetBySlug)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", deps.Orders.List)
			r.Get("/{id}", deps.Orders.Get)
		})

		r.Route("/admin/media", func(r chi.Router) {
			r.Post("/upload", requireAdmin(deps.Media.Upload))
			r.Post("/cleanup", requireAdmin(deps.Media.Cleanup))
		})
	})

	return r
}
