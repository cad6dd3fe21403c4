package adaptor

import (
	"encoding/json"
	"net/http"

	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/usecase"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

// TicketHandler serves the point-of-entry scanner.
type TicketHandler struct {
	service usecase.CompraService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.CompraService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// VerifyQR handles POST /api/v1/tickets/verify-qr (admin). The token is
// looked up verbatim; a hit marks the ticket scanned exactly once.
func (h *TicketHandler) VerifyQR(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	redemption, err := h.service.RedeemQR(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "verify qr")
		return
	}

	utils.ResponseSuccess(w, "Ticket redeemed", redemption)
}
