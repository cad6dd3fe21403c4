package usecase

import (
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/pkg/mailer"
	"cine-taquilla/pkg/payment"
	"cine-taquilla/pkg/tmdb"
	"cine-taquilla/pkg/token"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Sala    SalaService
	Funcion FuncionService
	Compra  CompraService
}

// Deps groups the external collaborators the services depend on. The
// publisher and sender may be nil; the affected side effects degrade to
// log-only.
type Deps struct {
	Tokens    *token.Manager
	Gateway   payment.Gateway
	TMDB      *tmdb.Client
	Publisher TicketPublisher
	Sender    mailer.Sender
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, deps.Tokens, deps.Sender, log),
		User:    NewUserService(repo.User, log),
		Movie:   NewMovieService(repo, deps.TMDB, log),
		Sala:    NewSalaService(repo, log),
		Funcion: NewFuncionService(repo, log),
		Compra:  NewCompraService(repo, config, deps.Gateway, deps.Publisher, log),
	}
}
