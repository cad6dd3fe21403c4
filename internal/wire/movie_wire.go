package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Public catalog.
	r.Get("/api/v1/movies", movieHandler.GetMovies)
	r.Get("/api/v1/movies/{id}", movieHandler.GetMovie)

	// Admin catalog management. Lookup goes before {id} so chi does not
	// swallow it as an id.
	r.Route("/api/v1/admin/movies", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/lookup", movieHandler.Lookup)
		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
