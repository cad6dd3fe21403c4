package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

// stubCompraService returns canned results so the handler's HTTP mapping can
// be tested in isolation.
type stubCompraService struct {
	redeemErr error
}

func (s *stubCompraService) Purchase(ctx context.Context, userID int64, req *request.PurchaseRequest) (*response.CompraResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubCompraService) GetCompraByID(ctx context.Context, requesterID int64, requesterRole string, id int64) (*response.CompraResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubCompraService) GetUserCompras(ctx context.Context, userID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.CompraResponse], error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubCompraService) CancelCompra(ctx context.Context, id int64) error {
	return fmt.Errorf("not implemented")
}

func (s *stubCompraService) RedeemQR(ctx context.Context, req *request.VerifyQRRequest) (*response.RedemptionResponse, error) {
	if s.redeemErr != nil {
		return nil, s.redeemErr
	}
	return &response.RedemptionResponse{
		Compra: response.CompraResponse{ID: 7, QRCode: req.QRCode, Scanned: true},
	}, nil
}

func (s *stubCompraService) Pricing() response.PricingResponse {
	return response.PricingResponse{Currency: "DOP"}
}

func TestVerifyQRStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"valid ticket", `{"qrCode":"TKT-1"}`, nil, http.StatusOK},
		{"unknown token", `{"qrCode":"TKT-x"}`, fmt.Errorf("compra: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"already redeemed", `{"qrCode":"TKT-1"}`, apperrors.ErrAlreadyRedeemed, http.StatusBadRequest},
		{"expired", `{"qrCode":"TKT-1"}`, apperrors.ErrQRExpired, http.StatusBadRequest},
		{"missing token", `{}`, nil, http.StatusBadRequest},
		{"malformed body", `{`, nil, http.StatusBadRequest},
		{"backend failure", `{"qrCode":"TKT-1"}`, fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTicketHandler(&stubCompraService{redeemErr: tt.serviceErr}, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/verify-qr", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.VerifyQR(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var envelope utils.Response
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("response is not the standard envelope: %v", err)
			}
			wantOK := tt.wantStatus < 400
			if envelope.Status != wantOK {
				t.Errorf("envelope status = %v, want %v", envelope.Status, wantOK)
			}
		})
	}
}

func TestVerifyQRSuccessPayload(t *testing.T) {
	handler := NewTicketHandler(&stubCompraService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tickets/verify-qr", strings.NewReader(`{"qrCode":"TKT-abc"}`))
	rec := httptest.NewRecorder()
	handler.VerifyQR(rec, req)

	var envelope struct {
		Status bool                        `json:"status"`
		Data   response.RedemptionResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Compra.Scanned {
		t.Error("redeemed compra not marked scanned in payload")
	}
	if envelope.Data.Compra.QRCode != "TKT-abc" {
		t.Errorf("payload QR = %q, want TKT-abc", envelope.Data.Compra.QRCode)
	}
}
