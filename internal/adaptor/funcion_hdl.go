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

type FuncionHandler struct {
	service usecase.FuncionService
	log     *zap.Logger
}

func NewFuncionHandler(service usecase.FuncionService, log *zap.Logger) *FuncionHandler {
	return &FuncionHandler{
		service: service,
		log:     log.With(zap.String("handler", "funcion")),
	}
}

// CreateFuncion handles POST /api/v1/funciones (admin)
func (h *FuncionHandler) CreateFuncion(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFuncionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	funcion, err := h.service.CreateFuncion(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create funcion")
		return
	}

	utils.ResponseCreated(w, "success", funcion)
}

// GetFuncion handles GET /api/v1/funciones/{id}
func (h *FuncionHandler) GetFuncion(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid funcion id", nil)
		return
	}

	funcion, err := h.service.GetFuncionByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get funcion")
		return
	}

	utils.ResponseSuccess(w, "success", funcion)
}

// GetFunciones handles GET /api/v1/funciones?sala_id=&movie_id=
func (h *FuncionHandler) GetFunciones(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	salaID := utils.ParseInt64(query.Get("sala_id"))
	movieID := utils.ParseInt64(query.Get("movie_id"))

	funciones, err := h.service.GetFunciones(r.Context(), salaID, movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "list funciones")
		return
	}

	utils.ResponseSuccess(w, "success", funciones)
}

// UpdateFuncion handles PUT /api/v1/funciones/{id} (admin)
func (h *FuncionHandler) UpdateFuncion(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid funcion id", nil)
		return
	}

	var req request.UpdateFuncionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	funcion, err := h.service.UpdateFuncion(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update funcion")
		return
	}

	utils.ResponseSuccess(w, "success", funcion)
}

// DeleteFuncion handles DELETE /api/v1/funciones/{id} (admin)
func (h *FuncionHandler) DeleteFuncion(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid funcion id", nil)
		return
	}

	if err := h.service.DeleteFuncion(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete funcion")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
