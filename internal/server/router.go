package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"salesdesk/internal/customer"
	"salesdesk/internal/order"
	"salesdesk/internal/product"
)

func NewRouter(
	customerCtrl *customer.Controller,
	productCtrl *product.Controller,
	orderCtrl *order.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerCtrl.HandleCreate)
			r.Get("/", customerCtrl.HandleList)
			r.Get("/{id}", customerCtrl.HandleGet)
			r.Patch("/{id}", customerCtrl.HandleUpdate)
			r.Delete("/{id}", customerCtrl.HandleDelete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productCtrl.HandleCreate)
			r.Get("/", productCtrl.HandleList)
			r.Get("/{id}", productCtrl.HandleGet)
			r.Patch("/{id}", productCtrl.HandleUpdate)
			r.Delete("/{id}", productCtrl.HandleDelete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.HandleCreate)
			r.Get("/", orderCtrl.HandleList)
			r.Get("/{id}", orderCtrl.HandleGet)
			r.Patch("/{id}", orderCtrl.HandleUpdate)
			r.Delete("/{id}", orderCtrl.HandleDelete)
		})
	})

	return r
}
