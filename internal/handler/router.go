package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fooddelivery/internal/mw"
	"fooddelivery/internal/session"
)

func NewRouter(reg *session.Registry, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(jwtSecret))

		r.Get("/session", SessionHandler(reg))
		r.Get("/foods", SearchFoodsHandler(reg))

		r.Get("/basket", GetBasketHandler(reg))
		r.Post("/basket/items", AddBasketItemHandler(reg))
		r.Delete("/basket/items/{id}", RemoveBasketItemHandler(reg))

		r.Post("/orders", SubmitOrderHandler(reg))
		r.Post("/orders/{orderId}/tip", AddTipHandler(reg))

		r.Get("/deliveries", ListDeliveriesHandler(reg))
		r.Get("/deliveries/{orderId}", GetDeliveryHandler(reg))
		r.Post("/deliveries/actions", DeliveryActionHandler(reg))
		r.Post("/deliveries/{orderId}/delivery-man", AssignDeliveryManHandler(reg))
	})

	return r
}
