package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Scanner endpoint, staff only.
	r.Route("/api/v1/tickets", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/verify-qr", ticketHandler.VerifyQR)
	})
}
