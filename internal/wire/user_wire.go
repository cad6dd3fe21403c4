package wire

import (
	"cine-taquilla/internal/adaptor"
	"cine-taquilla/pkg/middleware"
	"cine-taquilla/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	tokens *token.Manager,
	log *zap.Logger,
) {
	r.With(middleware.Auth(tokens, log)).Get("/api/v1/users/me", userHandler.GetProfile)
}
