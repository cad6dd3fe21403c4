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

type CompraHandler struct {
	service usecase.CompraService
	log     *zap.Logger
}

func NewCompraHandler(service usecase.CompraService, log *zap.Logger) *CompraHandler {
	return &CompraHandler{
		service: service,
		log:     log.With(zap.String("handler", "compra")),
	}
}

// Purchase handles POST /api/v1/purchases (protected)
func (h *CompraHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	compra, err := h.service.Purchase(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "purchase tickets")
		return
	}

	utils.ResponseCreated(w, "success", compra)
}

// GetCompra handles GET /api/v1/purchases/{id} (protected, owner or admin)
func (h *CompraHandler) GetCompra(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid purchase id", nil)
		return
	}

	compra, err := h.service.GetCompraByID(r.Context(), userID, role, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get purchase")
		return
	}

	utils.ResponseSuccess(w, "success", compra)
}

// GetUserCompras handles GET /api/v1/purchases (protected)
func (h *CompraHandler) GetUserCompras(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	compras, err := h.service.GetUserCompras(r.Context(), userID, page)
	if err != nil {
		handleServiceError(w, h.log, err, "list purchases")
		return
	}

	utils.ResponseSuccess(w, "success", compras)
}

// CancelCompra handles POST /api/v1/purchases/{id}/cancel (admin)
func (h *CompraHandler) CancelCompra(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		utils.ResponseBadRequest(w, "Invalid purchase id", nil)
		return
	}

	if err := h.service.CancelCompra(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "cancel purchase")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetPricing handles GET /api/v1/pricing
func (h *CompraHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.Pricing())
}
