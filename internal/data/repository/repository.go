package repository

import (
	"cine-taquilla/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Sala    SalaRepository
	Funcion FuncionRepository
	Compra  CompraRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Sala:    NewSalaRepository(db, log),
		Funcion: NewFuncionRepository(db, log),
		Compra:  NewCompraRepository(db, log),
	}
}
