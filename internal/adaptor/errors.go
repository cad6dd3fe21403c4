package adaptor

import (
	"errors"
	"net/http"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses. All handlers
// share the same mapping so a sentinel means the same status everywhere.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, apperrors.ErrSchedulingConflict):
		log.Warn(operation+" failed - scheduling conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, apperrors.ErrPayment):
		log.Warn(operation+" failed - payment declined", zap.Error(err))
		utils.ResponsePaymentRequired(w, errMsg)

	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyRedeemed),
		errors.Is(err, apperrors.ErrQRExpired):
		log.Warn(operation+" failed - rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
