package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFuncion(
	r chi.Router,
	funcionHandler *adaptor.FuncionHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Public listings so customers can browse the schedule.
	r.Get("/api/v1/funciones", funcionHandler.GetFunciones)
	r.Get("/api/v1/funciones/{id}", funcionHandler.GetFuncion)

	r.Route("/api/v1/admin/funciones", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", funcionHandler.CreateFuncion)
		r.Put("/{id}", funcionHandler.UpdateFuncion)
		r.Delete("/{id}", funcionHandler.DeleteFuncion)
	})
}
