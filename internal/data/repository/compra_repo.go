package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CompraRepository interface {
	Create(ctx context.Context, compra *entity.Compra) error
	FindByID(ctx context.Context, id int64) (*entity.Compra, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Compra, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status entity.TransactionStatus) error
	// Redeem marks the purchase matching qrCode as scanned, exactly once.
	// The lookup-check-mutate sequence runs under a row lock so that of two
	// concurrent attempts only one succeeds. Returns ErrNotFound,
	// ErrAlreadyRedeemed or ErrQRExpired without mutating.
	Redeem(ctx context.Context, qrCode string, now time.Time) (*entity.Compra, error)
}

type compraRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCompraRepository(db database.PgxIface, log *zap.Logger) CompraRepository {
	return &compraRepository{
		db:  db,
		log: log.With(zap.String("repository", "compra")),
	}
}

const compraColumns = `id, user_id, funcion_id, cantidad_taquillas, tipo_taquilla, costo_total,
	fecha_hora_compra, estado_transaccion, payment_intent_id, qr_code, valid_until, scanned,
	created_at, updated_at`

func scanCompra(row pgx.Row) (*entity.Compra, error) {
	var compra entity.Compra
	err := row.Scan(
		&compra.ID,
		&compra.UserID,
		&compra.FuncionID,
		&compra.CantidadTaquillas,
		&compra.TipoTaquilla,
		&compra.CostoTotal,
		&compra.FechaHoraCompra,
		&compra.EstadoTransaccion,
		&compra.PaymentIntentID,
		&compra.QRCode,
		&compra.ValidUntil,
		&compra.Scanned,
		&compra.CreatedAt,
		&compra.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &compra, nil
}

func (r *compraRepository) Create(ctx context.Context, compra *entity.Compra) error {
	query := `
		INSERT INTO compras (user_id, funcion_id, cantidad_taquillas, tipo_taquilla, costo_total,
			fecha_hora_compra, estado_transaccion, payment_intent_id, qr_code, valid_until, scanned,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		compra.UserID,
		compra.FuncionID,
		compra.CantidadTaquillas,
		compra.TipoTaquilla,
		compra.CostoTotal,
		compra.FechaHoraCompra,
		compra.EstadoTransaccion,
		compra.PaymentIntentID,
		compra.QRCode,
		compra.ValidUntil,
		compra.Scanned,
	).Scan(&compra.ID, &compra.CreatedAt, &compra.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create compra",
			zap.Error(err),
			zap.Int64("user_id", compra.UserID),
			zap.Int64("funcion_id", compra.FuncionID),
		)
		return fmt.Errorf("create compra for user %d funcion %d: %w",
			compra.UserID, compra.FuncionID, err)
	}

	return nil
}

func (r *compraRepository) FindByID(ctx context.Context, id int64) (*entity.Compra, error) {
	query := `SELECT ` + compraColumns + ` FROM compras WHERE id = $1`

	compra, err := scanCompra(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find compra by ID",
			zap.Error(err),
			zap.Int64("compra_id", id),
		)
		return nil, fmt.Errorf("find compra by ID %d: %w", id, err)
	}

	return compra, nil
}

func (r *compraRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Compra, error) {
	query := `
		SELECT ` + compraColumns + `
		FROM compras
		WHERE user_id = $1
		ORDER BY fecha_hora_compra DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find compras by user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find compras by user %d: %w", userID, err)
	}
	defer rows.Close()

	var compras []*entity.Compra
	for rows.Next() {
		compra, err := scanCompra(rows)
		if err != nil {
			r.log.Error("Failed to scan compra row", zap.Error(err))
			return nil, fmt.Errorf("scan compra row: %w", err)
		}
		compras = append(compras, compra)
	}

	return compras, nil
}

func (r *compraRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM compras WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count compras", zap.Error(err), zap.Int64("user_id", userID))
		return 0, fmt.Errorf("count compras for user %d: %w", userID, err)
	}
	return total, nil
}

func (r *compraRepository) UpdateStatus(ctx context.Context, id int64, status entity.TransactionStatus) error {
	query := `UPDATE compras SET estado_transaccion = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update compra status",
			zap.Error(err),
			zap.Int64("compra_id", id),
		)
		return fmt.Errorf("update compra %d status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *compraRepository) Redeem(ctx context.Context, qrCode string, now time.Time) (*entity.Compra, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin redemption tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + compraColumns + ` FROM compras WHERE qr_code = $1 FOR UPDATE`

	compra, err := scanCompra(tx.QueryRow(ctx, query, qrCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to look up compra by qr code", zap.Error(err))
		return nil, fmt.Errorf("find compra by qr code: %w", err)
	}

	if compra.Scanned {
		return nil, apperrors.ErrAlreadyRedeemed
	}
	if now.After(compra.ValidUntil) {
		return nil, apperrors.ErrQRExpired
	}

	if _, err := tx.Exec(ctx,
		`UPDATE compras SET scanned = TRUE, updated_at = $2 WHERE id = $1`,
		compra.ID, now,
	); err != nil {
		r.log.Error("Failed to mark compra scanned",
			zap.Error(err),
			zap.Int64("compra_id", compra.ID),
		)
		return nil, fmt.Errorf("mark compra %d scanned: %w", compra.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit redemption: %w", err)
	}

	compra.Scanned = true
	compra.UpdatedAt = now
	return compra, nil
}
