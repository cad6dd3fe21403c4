package adaptor

import (
	"encoding/json"
	"net/http"

	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/usecase"
	"cine-taquilla/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SalaHandler struct {
	service usecase.SalaService
	log     *zap.Logger
}

func NewSalaHandler(service usecase.SalaService, log *zap.Logger) *SalaHandler {
	return &SalaHandler{
		service: service,
		log:     log.With(zap.String("handler", "sala")),
	}
}

// CreateSala handles POST /api/v1/salas (admin)
func (h *SalaHandler) CreateSala(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateSalaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sala, err := h.service.CreateSala(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create sala")
		return
	}

	utils.ResponseCreated(w, "success", sala)
}

// GetSala handles GET /api/v1/salas/{id}
func (h *SalaHandler) GetSala(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid sala id", nil)
		return
	}

	sala, err := h.service.GetSalaByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get sala")
		return
	}

	utils.ResponseSuccess(w, "success", sala)
}

// GetSalas handles GET /api/v1/salas
func (h *SalaHandler) GetSalas(w http.ResponseWriter, r *http.Request) {
	salas, err := h.service.GetSalas(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list salas")
		return
	}

	utils.ResponseSuccess(w, "success", salas)
}

// UpdateSala handles PUT /api/v1/salas/{id} (admin)
func (h *SalaHandler) UpdateSala(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid sala id", nil)
		return
	}

	var req request.UpdateSalaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	sala, err := h.service.UpdateSala(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update sala")
		return
	}

	utils.ResponseSuccess(w, "success", sala)
}

// DeleteSala handles DELETE /api/v1/salas/{id} (admin)
func (h *SalaHandler) DeleteSala(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid sala id", nil)
		return
	}

	if err := h.service.DeleteSala(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete sala")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
