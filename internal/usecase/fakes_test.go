package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/notify"
	"cine-taquilla/pkg/payment"
)

// In-memory repository fakes. They reproduce the contracts documented on the
// repository interfaces, including the overlap and redemption rules, so the
// services can be exercised without postgres.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.EmailVerified = true
	}
	return nil
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	nextID int64
	movies map[int64]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[int64]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	movie.ID = f.nextID
	copied := *movie
	f.movies[movie.ID] = &copied
	return nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	movie, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	copied := *movie
	return &copied, nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Movie, 0, len(f.movies))
	for _, movie := range f.movies {
		copied := *movie
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMovieRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.movies)), nil
}

func (f *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *movie
	f.movies[movie.ID] = &copied
	return nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.movies, id)
	return nil
}

type fakeSalaRepo struct {
	mu     sync.Mutex
	nextID int64
	salas  map[int64]*entity.Sala
}

func newFakeSalaRepo() *fakeSalaRepo {
	return &fakeSalaRepo{salas: make(map[int64]*entity.Sala)}
}

func (f *fakeSalaRepo) Create(ctx context.Context, sala *entity.Sala) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	sala.ID = f.nextID
	copied := *sala
	f.salas[sala.ID] = &copied
	return nil
}

func (f *fakeSalaRepo) FindByID(ctx context.Context, id int64) (*entity.Sala, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sala, ok := f.salas[id]
	if !ok {
		return nil, nil
	}
	copied := *sala
	return &copied, nil
}

func (f *fakeSalaRepo) FindAll(ctx context.Context) ([]*entity.Sala, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Sala, 0, len(f.salas))
	for _, sala := range f.salas {
		copied := *sala
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSalaRepo) Update(ctx context.Context, sala *entity.Sala) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *sala
	f.salas[sala.ID] = &copied
	return nil
}

func (f *fakeSalaRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.salas, id)
	return nil
}

type fakeFuncionRepo struct {
	mu        sync.Mutex
	nextID    int64
	funciones map[int64]*entity.Funcion
}

func newFakeFuncionRepo() *fakeFuncionRepo {
	return &fakeFuncionRepo{funciones: make(map[int64]*entity.Funcion)}
}

func (f *fakeFuncionRepo) conflicts(candidate *entity.Funcion, excludeID int64) bool {
	for _, existing := range f.funciones {
		if existing.SalaID != candidate.SalaID || existing.ID == excludeID {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, existing.StartTime, existing.EndTime) {
			return true
		}
	}
	return false
}

func (f *fakeFuncionRepo) CreateScheduled(ctx context.Context, funcion *entity.Funcion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts(funcion, 0) {
		return apperrors.ErrSchedulingConflict
	}
	f.nextID++
	funcion.ID = f.nextID
	copied := *funcion
	f.funciones[funcion.ID] = &copied
	return nil
}

func (f *fakeFuncionRepo) UpdateScheduled(ctx context.Context, funcion *entity.Funcion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.funciones[funcion.ID]; !ok {
		return fmt.Errorf("funcion %d: %w", funcion.ID, apperrors.ErrNotFound)
	}
	if f.conflicts(funcion, funcion.ID) {
		return apperrors.ErrSchedulingConflict
	}
	copied := *funcion
	f.funciones[funcion.ID] = &copied
	return nil
}

func (f *fakeFuncionRepo) FindByID(ctx context.Context, id int64) (*entity.Funcion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	funcion, ok := f.funciones[id]
	if !ok {
		return nil, nil
	}
	copied := *funcion
	return &copied, nil
}

func (f *fakeFuncionRepo) FindAll(ctx context.Context, salaID, movieID int64) ([]*entity.Funcion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Funcion, 0, len(f.funciones))
	for _, funcion := range f.funciones {
		if salaID != 0 && funcion.SalaID != salaID {
			continue
		}
		if movieID != 0 && funcion.MovieID != movieID {
			continue
		}
		copied := *funcion
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeFuncionRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.funciones, id)
	return nil
}

type fakeCompraRepo struct {
	mu        sync.Mutex
	nextID    int64
	compras   map[int64]*entity.Compra
	createErr error
}

func newFakeCompraRepo() *fakeCompraRepo {
	return &fakeCompraRepo{compras: make(map[int64]*entity.Compra)}
}

func (f *fakeCompraRepo) Create(ctx context.Context, compra *entity.Compra) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	compra.ID = f.nextID
	copied := *compra
	f.compras[compra.ID] = &copied
	return nil
}

func (f *fakeCompraRepo) FindByID(ctx context.Context, id int64) (*entity.Compra, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	compra, ok := f.compras[id]
	if !ok {
		return nil, nil
	}
	copied := *compra
	return &copied, nil
}

func (f *fakeCompraRepo) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Compra, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Compra, 0)
	for _, compra := range f.compras {
		if compra.UserID == userID {
			copied := *compra
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCompraRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, compra := range f.compras {
		if compra.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCompraRepo) UpdateStatus(ctx context.Context, id int64, status entity.TransactionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if compra, ok := f.compras[id]; ok {
		compra.EstadoTransaccion = status
	}
	return nil
}

func (f *fakeCompraRepo) Redeem(ctx context.Context, qrCode string, now time.Time) (*entity.Compra, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, compra := range f.compras {
		if compra.QRCode != qrCode {
			continue
		}
		if compra.Scanned {
			return nil, apperrors.ErrAlreadyRedeemed
		}
		if now.After(compra.ValidUntil) {
			return nil, apperrors.ErrQRExpired
		}
		compra.Scanned = true
		copied := *compra
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func newFakeRepository() *repository.Repository {
	return &repository.Repository{
		User:    newFakeUserRepo(),
		Movie:   newFakeMovieRepo(),
		Sala:    newFakeSalaRepo(),
		Funcion: newFakeFuncionRepo(),
		Compra:  newFakeCompraRepo(),
	}
}

// fakeGateway approves or declines everything and counts calls.
type fakeGateway struct {
	mu          sync.Mutex
	createCalls int
	lastAmount  int64
	lastKey     string
	failCreate  bool
	status      string
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastAmount = amountMinorUnits
	g.lastKey = idempotencyKey
	if g.failCreate {
		return nil, fmt.Errorf("card declined")
	}
	return &payment.Intent{ID: "pi_test", Status: "requires_confirmation"}, nil
}

func (g *fakeGateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status := g.status
	if status == "" {
		status = payment.StatusSucceeded
	}
	return &payment.Intent{ID: intentID, Status: status}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []notify.TicketPurchasedEvent
}

func (p *fakePublisher) PublishTicketPurchased(ctx context.Context, event notify.TicketPurchasedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
