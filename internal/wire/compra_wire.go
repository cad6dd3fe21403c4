package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCompra(
	r chi.Router,
	compraHandler *adaptor.CompraHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Price table is public so the client can show totals before checkout.
	r.Get("/api/v1/pricing", compraHandler.GetPricing)

	r.Route("/api/v1/purchases", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		r.Post("/", compraHandler.Purchase)
		r.Get("/", compraHandler.GetUserCompras)
		r.Get("/{id}", compraHandler.GetCompra)

		r.With(middleware.Admin(repo.User, log)).Post("/{id}/cancel", compraHandler.CancelCompra)
	})
}
