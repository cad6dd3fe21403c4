package adaptor

import (
	"cine-taquilla/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Movie   *MovieHandler
	Sala    *SalaHandler
	Funcion *FuncionHandler
	Compra  *CompraHandler
	Ticket  *TicketHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Sala:    NewSalaHandler(service.Sala, log),
		Funcion: NewFuncionHandler(service.Funcion, log),
		Compra:  NewCompraHandler(service.Compra, log),
		Ticket:  NewTicketHandler(service.Compra, log),
	}
}
