package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

func testPricing() utils.PricingConfig {
	return utils.PricingConfig{
		VIPPrice:     250,
		RegularPrice: 150,
		ExchangeRate: 59.3,
		MinUSDCents:  50,
	}
}

type compraFixture struct {
	svc       *compraService
	repo      *repository.Repository
	gateway   *fakeGateway
	publisher *fakePublisher
	user      *entity.User
	funcion   *entity.Funcion
}

func newCompraFixture(t *testing.T, salaType entity.SalaType) *compraFixture {
	t.Helper()
	repo := newFakeRepository()
	ctx := context.Background()

	user := &entity.User{Name: "Ana", Email: "ana@example.com", Role: entity.RoleCustomer, IsActive: true}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	movie := &entity.Movie{Title: "Dune", DurationInMinutes: 155}
	if err := repo.Movie.Create(ctx, movie); err != nil {
		t.Fatalf("create movie: %v", err)
	}
	sala := &entity.Sala{Name: "Sala VIP", Capacity: 40, Type: salaType}
	if err := repo.Sala.Create(ctx, sala); err != nil {
		t.Fatalf("create sala: %v", err)
	}
	funcion := &entity.Funcion{
		MovieID:   movie.ID,
		SalaID:    sala.ID,
		StartTime: 600,
		EndTime:   755,
		Duration:  155,
		Status:    entity.FuncionStatusProgramada,
	}
	if err := repo.Funcion.CreateScheduled(ctx, funcion); err != nil {
		t.Fatalf("create funcion: %v", err)
	}

	gateway := &fakeGateway{}
	publisher := &fakePublisher{}
	config := &utils.Config{Pricing: testPricing()}

	svc := NewCompraService(repo, config, gateway, publisher, zap.NewNop()).(*compraService)
	return &compraFixture{
		svc:       svc,
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		user:      user,
		funcion:   funcion,
	}
}

func TestUnitPrice(t *testing.T) {
	pricing := testPricing()
	if got := UnitPrice(pricing, entity.TicketVIP); got != 250 {
		t.Errorf("VIP price = %d, want 250", got)
	}
	if got := UnitPrice(pricing, entity.TicketRegular); got != 150 {
		t.Errorf("Regular price = %d, want 150", got)
	}
}

func TestUSDCents(t *testing.T) {
	tests := []struct {
		totalDOP int64
		want     int64
	}{
		{750, 1265},  // 750/59.3*100 = 1264.75...
		{150, 253},   // 150/59.3*100 = 252.95...
		{593, 1000},  // exact
		{1250, 2109}, // 5 VIP tickets
	}
	for _, tt := range tests {
		if got := USDCents(tt.totalDOP, 59.3); got != tt.want {
			t.Errorf("USDCents(%d) = %d, want %d", tt.totalDOP, got, tt.want)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	loc := time.FixedZone("AST", -4*3600)
	purchase := time.Date(2026, 3, 15, 10, 30, 0, 0, loc)
	got := EndOfDay(purchase)
	want := time.Date(2026, 3, 15, 23, 59, 59, 999_000_000, loc)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}

func TestPurchasePricesBySalaType(t *testing.T) {
	tests := []struct {
		name     string
		salaType entity.SalaType
		cantidad int
		want     int64
		wantTipo entity.TicketType
	}{
		{"three vip", entity.SalaTypeVIP, 3, 750, entity.TicketVIP},
		{"one vip", entity.SalaTypeVIP, 1, 250, entity.TicketVIP},
		{"five regular", entity.SalaTypeRegular, 5, 750, entity.TicketRegular},
		{"two regular", entity.SalaTypeRegular, 2, 300, entity.TicketRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newCompraFixture(t, tt.salaType)

			resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
				FuncionID:         fx.funcion.ID,
				CantidadTaquillas: tt.cantidad,
				PaymentMethodID:   "pm_card",
			})
			if err != nil {
				t.Fatalf("Purchase: %v", err)
			}
			if resp.CostoTotal != tt.want {
				t.Errorf("CostoTotal = %d, want %d", resp.CostoTotal, tt.want)
			}
			if resp.TipoTaquilla != tt.wantTipo {
				t.Errorf("TipoTaquilla = %q, want %q", resp.TipoTaquilla, tt.wantTipo)
			}
		})
	}
}

func TestPurchaseQuantityBounds(t *testing.T) {
	for _, cantidad := range []int{0, -1, 6, 10} {
		fx := newCompraFixture(t, entity.SalaTypeRegular)
		_, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
			FuncionID:         fx.funcion.ID,
			CantidadTaquillas: cantidad,
			PaymentMethodID:   "pm_card",
		})
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("cantidad %d: err = %v, want ErrValidation", cantidad, err)
		}
		if fx.gateway.createCalls != 0 {
			t.Errorf("cantidad %d: gateway was called %d times", cantidad, fx.gateway.createCalls)
		}
	}
}

func TestPurchaseChargesGatewayInUSDCents(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeVIP)

	if _, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 3,
		PaymentMethodID:   "pm_card",
	}); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	// 750 DOP at 59.3 rounds up to 1265 cents.
	if fx.gateway.lastAmount != 1265 {
		t.Errorf("charged %d cents, want 1265", fx.gateway.lastAmount)
	}
	if fx.gateway.lastKey == "" {
		t.Error("no idempotency key sent to gateway")
	}
}

func TestPurchaseBelowGatewayMinimum(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)
	fx.svc.config.Pricing.ExchangeRate = 100000 // 150 DOP becomes fractions of a cent

	_, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	// The minimum check runs before the gateway is contacted.
	if fx.gateway.createCalls != 0 {
		t.Errorf("gateway was called %d times, want 0", fx.gateway.createCalls)
	}
}

func TestPurchaseDeclinedPersistsNothing(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)
	fx.gateway.failCreate = true

	_, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 2,
		PaymentMethodID:   "pm_card",
	})
	if !errors.Is(err, apperrors.ErrPayment) {
		t.Fatalf("err = %v, want ErrPayment", err)
	}

	compras, _ := fx.repo.Compra.FindByUserID(context.Background(), fx.user.ID, 10, 0)
	if len(compras) != 0 {
		t.Errorf("%d compras persisted after declined payment, want 0", len(compras))
	}
	if len(fx.publisher.events) != 0 {
		t.Errorf("%d events published after declined payment, want 0", len(fx.publisher.events))
	}
}

func TestPurchaseUnconfirmedIntentFails(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)
	fx.gateway.status = "requires_action"

	_, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if !errors.Is(err, apperrors.ErrPayment) {
		t.Fatalf("err = %v, want ErrPayment", err)
	}
}

func TestPurchaseIssuesQRAndValidity(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeVIP)
	purchaseTime := time.Date(2026, 7, 4, 15, 45, 0, 0, time.UTC)
	fx.svc.now = func() time.Time { return purchaseTime }

	resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 2,
		PaymentMethodID:   "pm_card",
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if resp.QRCode == "" {
		t.Fatal("no QR token issued")
	}
	if !strings.HasPrefix(resp.QRImage, "data:image/png;base64,") {
		t.Errorf("QRImage is not a png data uri: %.40q", resp.QRImage)
	}

	wantValid := time.Date(2026, 7, 4, 23, 59, 59, 999_000_000, time.UTC)
	if !resp.ValidUntil.Equal(wantValid) {
		t.Errorf("ValidUntil = %v, want %v", resp.ValidUntil, wantValid)
	}
	if resp.Scanned {
		t.Error("new ticket already marked scanned")
	}

	if len(fx.publisher.events) != 1 {
		t.Fatalf("%d events published, want 1", len(fx.publisher.events))
	}
	event := fx.publisher.events[0]
	if event.QRCode != resp.QRCode {
		t.Errorf("event QR %q does not match response %q", event.QRCode, resp.QRCode)
	}
	if event.MovieTitle != "Dune" {
		t.Errorf("event movie = %q, want Dune", event.MovieTitle)
	}
}

func TestRedeemQRExactlyOnce(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)

	resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	redeemed, err := fx.svc.RedeemQR(context.Background(), &request.VerifyQRRequest{QRCode: resp.QRCode})
	if err != nil {
		t.Fatalf("first RedeemQR: %v", err)
	}
	if !redeemed.Compra.Scanned {
		t.Error("redeemed ticket not marked scanned")
	}
	if redeemed.Movie == nil || redeemed.Movie.Title != "Dune" {
		t.Error("redemption missing screening context")
	}

	if _, err := fx.svc.RedeemQR(context.Background(), &request.VerifyQRRequest{QRCode: resp.QRCode}); !errors.Is(err, apperrors.ErrAlreadyRedeemed) {
		t.Errorf("second RedeemQR err = %v, want ErrAlreadyRedeemed", err)
	}
}

func TestRedeemQRConcurrent(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)

	resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var succeeded, alreadyRedeemed int

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.RedeemQR(context.Background(), &request.VerifyQRRequest{QRCode: resp.QRCode})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrAlreadyRedeemed):
				alreadyRedeemed++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d redemptions succeeded, want exactly 1", succeeded)
	}
	if alreadyRedeemed != attempts-1 {
		t.Errorf("%d attempts saw already-redeemed, want %d", alreadyRedeemed, attempts-1)
	}
}

func TestRedeemQRExpired(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)
	purchaseTime := time.Date(2026, 7, 4, 20, 0, 0, 0, time.UTC)
	fx.svc.now = func() time.Time { return purchaseTime }

	resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	// Next morning the ticket is dead.
	fx.svc.now = func() time.Time { return time.Date(2026, 7, 5, 0, 0, 1, 0, time.UTC) }

	if _, err := fx.svc.RedeemQR(context.Background(), &request.VerifyQRRequest{QRCode: resp.QRCode}); !errors.Is(err, apperrors.ErrQRExpired) {
		t.Errorf("err = %v, want ErrQRExpired", err)
	}
}

func TestRedeemQRUnknownToken(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)

	_, err := fx.svc.RedeemQR(context.Background(), &request.VerifyQRRequest{QRCode: "TKT-nope"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetCompraOwnership(t *testing.T) {
	fx := newCompraFixture(t, entity.SalaTypeRegular)

	resp, err := fx.svc.Purchase(context.Background(), fx.user.ID, &request.PurchaseRequest{
		FuncionID:         fx.funcion.ID,
		CantidadTaquillas: 1,
		PaymentMethodID:   "pm_card",
	})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	if _, err := fx.svc.GetCompraByID(context.Background(), fx.user.ID, string(entity.RoleCustomer), resp.ID); err != nil {
		t.Errorf("owner read: %v", err)
	}
	if _, err := fx.svc.GetCompraByID(context.Background(), fx.user.ID+1, string(entity.RoleCustomer), resp.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger read err = %v, want ErrForbidden", err)
	}
	if _, err := fx.svc.GetCompraByID(context.Background(), fx.user.ID+1, string(entity.RoleAdmin), resp.ID); err != nil {
		t.Errorf("admin read: %v", err)
	}
}
