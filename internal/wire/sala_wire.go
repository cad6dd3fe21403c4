package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSala(
	r chi.Router,
	salaHandler *adaptor.SalaHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.Get("/api/v1/salas", salaHandler.GetSalas)
	r.Get("/api/v1/salas/{id}", salaHandler.GetSala)

	r.Route("/api/v1/admin/salas", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", salaHandler.CreateSala)
		r.Put("/{id}", salaHandler.UpdateSala)
		r.Delete("/{id}", salaHandler.DeleteSala)
	})
}
