package wire

import (
	"net/http"

	"cine-taquilla/internal/adaptor"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/usecase"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"
	"cine-taquilla/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, deps usecase.Deps, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, deps.Tokens, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router.
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Manager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, logger)
	wireUser(r, handler.User, tokens, logger)
	wireMovie(r, handler.Movie, repo, tokens, logger)
	wireSala(r, handler.Sala, repo, tokens, logger)
	wireFuncion(r, handler.Funcion, repo, tokens, logger)
	wireCompra(r, handler.Compra, repo, tokens, logger)
	wireTicket(r, handler.Ticket, repo, tokens, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
