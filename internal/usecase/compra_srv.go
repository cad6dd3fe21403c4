package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/internal/notify"
	"cine-taquilla/pkg/metrics"
	"cine-taquilla/pkg/payment"
	"cine-taquilla/pkg/qr"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

// TicketPublisher decouples the purchase workflow from the broker so tests
// can observe published events without a running rabbitmq.
type TicketPublisher interface {
	PublishTicketPurchased(ctx context.Context, event notify.TicketPurchasedEvent) error
}

type CompraService interface {
	// Purchase runs the full workflow: price the tickets from the sala's
	// type, charge the gateway in USD cents, persist the purchase and issue
	// its QR token. Nothing is persisted if the charge fails.
	Purchase(ctx context.Context, userID int64, req *request.PurchaseRequest) (*response.CompraResponse, error)
	GetCompraByID(ctx context.Context, requesterID int64, requesterRole string, id int64) (*response.CompraResponse, error)
	GetUserCompras(ctx context.Context, userID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.CompraResponse], error)
	CancelCompra(ctx context.Context, id int64) error
	// RedeemQR verifies a ticket token at the point of entry and marks it
	// scanned, exactly once.
	RedeemQR(ctx context.Context, req *request.VerifyQRRequest) (*response.RedemptionResponse, error)
	Pricing() response.PricingResponse
}

type compraService struct {
	repo      *repository.Repository
	config    *utils.Config
	gateway   payment.Gateway
	publisher TicketPublisher
	now       func() time.Time
	log       *zap.Logger
}

func NewCompraService(repo *repository.Repository, config *utils.Config, gateway payment.Gateway, publisher TicketPublisher, log *zap.Logger) CompraService {
	return &compraService{
		repo:      repo,
		config:    config,
		gateway:   gateway,
		publisher: publisher,
		now:       time.Now,
		log:       log.With(zap.String("service", "compra")),
	}
}

// UnitPrice returns the per-ticket price in Dominican Pesos for a sala type.
func UnitPrice(pricing utils.PricingConfig, tipo entity.TicketType) int64 {
	if tipo == entity.TicketVIP {
		return pricing.VIPPrice
	}
	return pricing.RegularPrice
}

// USDCents converts a peso total to USD cents, rounding up so the gateway is
// never undercharged by a fraction of a cent.
func USDCents(totalDOP int64, exchangeRate float64) int64 {
	return int64(math.Ceil(float64(totalDOP) / exchangeRate * 100))
}

// EndOfDay is the last representable instant of t's calendar day. Tickets are
// valid until the end of the purchase day, not 24 hours from purchase.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

func (s *compraService) Purchase(ctx context.Context, userID int64, req *request.PurchaseRequest) (*response.CompraResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		metrics.PurchasesTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	funcion, err := s.repo.Funcion.FindByID(ctx, req.FuncionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find funcion: %w", err)
	}
	if funcion == nil {
		return nil, fmt.Errorf("funcion %d: %w", req.FuncionID, apperrors.ErrNotFound)
	}
	if funcion.Status == entity.FuncionStatusCancelada {
		return nil, fmt.Errorf("%w: funcion %d is cancelled", apperrors.ErrValidation, req.FuncionID)
	}

	sala, err := s.repo.Sala.FindByID(ctx, funcion.SalaID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sala: %w", err)
	}
	if sala == nil {
		return nil, fmt.Errorf("sala %d: %w", funcion.SalaID, apperrors.ErrNotFound)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}

	// The ticket type follows the sala, never the request body.
	tipo := entity.TicketType(sala.Type)
	costoTotal := UnitPrice(s.config.Pricing, tipo) * int64(req.CantidadTaquillas)

	cents := USDCents(costoTotal, s.config.Pricing.ExchangeRate)
	if cents < s.config.Pricing.MinUSDCents {
		metrics.PurchasesTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: amount %d USD cents is below the gateway minimum", apperrors.ErrValidation, cents)
	}

	now := s.now()
	idempotencyKey := fmt.Sprintf("compra-%d-%d-%s", userID, req.FuncionID, now.UTC().Format("200601021504"))

	intent, err := s.gateway.CreateIntent(ctx, cents, "usd", idempotencyKey)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPayment, err)
	}
	confirmed, err := s.gateway.ConfirmIntent(ctx, intent.ID, req.PaymentMethodID)
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPayment, err)
	}
	if confirmed.Status != payment.StatusSucceeded {
		metrics.PurchasesTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: intent %s finished with status %q", apperrors.ErrPayment, confirmed.ID, confirmed.Status)
	}

	compra := &entity.Compra{
		UserID:            userID,
		FuncionID:         req.FuncionID,
		CantidadTaquillas: req.CantidadTaquillas,
		TipoTaquilla:      tipo,
		CostoTotal:        costoTotal,
		FechaHoraCompra:   now,
		EstadoTransaccion: entity.TransactionCompletada,
		PaymentIntentID:   confirmed.ID,
		QRCode:            utils.GenerateTicketToken(userID, req.FuncionID, req.CantidadTaquillas, now),
		ValidUntil:        EndOfDay(now),
	}
	if err := s.repo.Compra.Create(ctx, compra); err != nil {
		// The charge already went through; this needs manual reconciliation.
		s.log.Error("charge succeeded but persisting the purchase failed",
			zap.Error(err),
			zap.String("payment_intent_id", confirmed.ID),
			zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	metrics.PurchasesTotal.WithLabelValues("completed").Inc()
	s.log.Info("purchase completed",
		zap.Int64("compra_id", compra.ID),
		zap.Int64("user_id", userID),
		zap.Int64("funcion_id", req.FuncionID),
		zap.Int("cantidad", req.CantidadTaquillas),
		zap.Int64("costo_total", costoTotal))

	s.publishPurchase(ctx, compra, user, funcion, sala)

	resp := response.CompraToResponse(compra)
	if image, err := qr.EncodeDataURI(compra.QRCode); err == nil {
		resp.QRImage = image
	} else {
		s.log.Error("failed to encode qr image", zap.Error(err), zap.Int64("compra_id", compra.ID))
	}
	return &resp, nil
}

// publishPurchase enqueues the confirmation email event. The purchase is
// already committed, so a broker failure is logged, not returned.
func (s *compraService) publishPurchase(ctx context.Context, compra *entity.Compra, user *entity.User, funcion *entity.Funcion, sala *entity.Sala) {
	if s.publisher == nil {
		return
	}
	movieTitle := ""
	if movie, err := s.repo.Movie.FindByID(ctx, funcion.MovieID); err == nil && movie != nil {
		movieTitle = movie.Title
	}
	event := notify.TicketPurchasedEvent{
		CompraID:        compra.ID,
		UserID:          user.ID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		MovieTitle:      movieTitle,
		SalaName:        sala.Name,
		StartTime:       funcion.StartTime,
		Cantidad:        compra.CantidadTaquillas,
		TipoTaquilla:    string(compra.TipoTaquilla),
		CostoTotal:      compra.CostoTotal,
		QRCode:          compra.QRCode,
		FechaHoraCompra: compra.FechaHoraCompra,
	}
	if err := s.publisher.PublishTicketPurchased(ctx, event); err != nil {
		s.log.Error("failed to publish purchase event", zap.Error(err), zap.Int64("compra_id", compra.ID))
	}
}

func (s *compraService) GetCompraByID(ctx context.Context, requesterID int64, requesterRole string, id int64) (*response.CompraResponse, error) {
	compra, err := s.repo.Compra.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find compra: %w", err)
	}
	if compra == nil {
		return nil, fmt.Errorf("compra %d: %w", id, apperrors.ErrNotFound)
	}
	if compra.UserID != requesterID && requesterRole != string(entity.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}
	resp := response.CompraToResponse(compra)
	return &resp, nil
}

func (s *compraService) GetUserCompras(ctx context.Context, userID int64, page request.PaginatedRequest) (*response.PaginatedResponse[response.CompraResponse], error) {
	compras, err := s.repo.Compra.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list compras: %w", err)
	}
	total, err := s.repo.Compra.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count compras: %w", err)
	}
	items := make([]response.CompraResponse, 0, len(compras))
	for _, compra := range compras {
		items = append(items, response.CompraToResponse(compra))
	}
	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *compraService) CancelCompra(ctx context.Context, id int64) error {
	compra, err := s.repo.Compra.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find compra: %w", err)
	}
	if compra == nil {
		return fmt.Errorf("compra %d: %w", id, apperrors.ErrNotFound)
	}
	if compra.Scanned {
		return fmt.Errorf("%w: compra %d was already redeemed", apperrors.ErrValidation, id)
	}
	if err := s.repo.Compra.UpdateStatus(ctx, id, entity.TransactionCancelada); err != nil {
		return fmt.Errorf("failed to cancel compra: %w", err)
	}
	s.log.Info("compra cancelled", zap.Int64("compra_id", id))
	return nil
}

func (s *compraService) RedeemQR(ctx context.Context, req *request.VerifyQRRequest) (*response.RedemptionResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	compra, err := s.repo.Compra.Redeem(ctx, req.QRCode, s.now())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			metrics.RedemptionsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, apperrors.ErrAlreadyRedeemed):
			metrics.RedemptionsTotal.WithLabelValues("already_redeemed").Inc()
		case errors.Is(err, apperrors.ErrQRExpired):
			metrics.RedemptionsTotal.WithLabelValues("expired").Inc()
		}
		return nil, err
	}

	metrics.RedemptionsTotal.WithLabelValues("redeemed").Inc()
	s.log.Info("ticket redeemed", zap.Int64("compra_id", compra.ID))

	resp := &response.RedemptionResponse{Compra: response.CompraToResponse(compra)}

	// Screening context for the scanner display, best effort.
	funcion, err := s.repo.Funcion.FindByID(ctx, compra.FuncionID)
	if err != nil || funcion == nil {
		return resp, nil
	}
	funcionResp := response.FuncionToResponse(funcion)
	resp.Funcion = &funcionResp
	if movie, err := s.repo.Movie.FindByID(ctx, funcion.MovieID); err == nil && movie != nil {
		movieResp := response.MovieToResponse(movie)
		resp.Movie = &movieResp
	}
	if sala, err := s.repo.Sala.FindByID(ctx, funcion.SalaID); err == nil && sala != nil {
		salaResp := response.SalaToResponse(sala)
		resp.Sala = &salaResp
	}
	return resp, nil
}

func (s *compraService) Pricing() response.PricingResponse {
	return response.PricingResponse{
		Currency:     "DOP",
		VIPPrice:     s.config.Pricing.VIPPrice,
		RegularPrice: s.config.Pricing.RegularPrice,
		ExchangeRate: s.config.Pricing.ExchangeRate,
	}
}
