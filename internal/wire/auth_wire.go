package wire

import (
	"cine-taquilla/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	log *zap.Logger,
) {
	// All auth routes are public; the tokens inside the bodies carry the
	// proof of identity.
	r.Post("/api/v1/auth/register", authHandler.Register)
	r.Post("/api/v1/auth/login", authHandler.Login)
	r.Post("/api/v1/auth/refresh", authHandler.Refresh)
	r.Post("/api/v1/auth/reset-password", authHandler.RequestPasswordReset)
	r.Post("/api/v1/auth/reset-password/confirm", authHandler.ConfirmPasswordReset)
	r.Post("/api/v1/auth/confirm-email", authHandler.ConfirmEmail)
}
