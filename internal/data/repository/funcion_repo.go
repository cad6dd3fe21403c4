package repository

import (
	"context"
	"errors"
	"fmt"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FuncionRepository interface {
	// CreateScheduled inserts the funcion after verifying no overlapping
	// showing exists in the same sala. Returns apperrors.ErrSchedulingConflict
	// on overlap.
	CreateScheduled(ctx context.Context, funcion *entity.Funcion) error
	// UpdateScheduled re-runs the overlap check, excluding the funcion's own
	// row, then updates it.
	UpdateScheduled(ctx context.Context, funcion *entity.Funcion) error
	FindByID(ctx context.Context, id int64) (*entity.Funcion, error)
	FindAll(ctx context.Context, salaID, movieID int64) ([]*entity.Funcion, error)
	Delete(ctx context.Context, id int64) error
}

type funcionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFuncionRepository(db database.PgxIface, log *zap.Logger) FuncionRepository {
	return &funcionRepository{
		db:  db,
		log: log.With(zap.String("repository", "funcion")),
	}
}

// Overlap test uses half-open intervals: an existing showing S conflicts with
// candidate C iff S.start < C.end AND S.end > C.start, so a showing that
// starts exactly when another ends is admitted. The scan-then-insert sequence
// runs under pg_advisory_xact_lock keyed by sala, which serializes concurrent
// scheduling requests for the same sala without blocking other salas.

func (r *funcionRepository) CreateScheduled(ctx context.Context, funcion *entity.Funcion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin scheduling tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.lockAndCheckOverlap(ctx, tx, funcion, 0); err != nil {
		return err
	}

	query := `
		INSERT INTO funciones (movie_id, sala_id, start_time, end_time, duration, status, is_premiere, is_weekend, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		funcion.MovieID,
		funcion.SalaID,
		funcion.StartTime,
		funcion.EndTime,
		funcion.Duration,
		funcion.Status,
		funcion.IsPremiere,
		funcion.IsWeekend,
	).Scan(&funcion.ID, &funcion.CreatedAt, &funcion.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create funcion",
			zap.Error(err),
			zap.Int64("movie_id", funcion.MovieID),
			zap.Int64("sala_id", funcion.SalaID),
		)
		return fmt.Errorf("create funcion for movie %d sala %d: %w",
			funcion.MovieID, funcion.SalaID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit funcion create: %w", err)
	}

	return nil
}

func (r *funcionRepository) UpdateScheduled(ctx context.Context, funcion *entity.Funcion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin scheduling tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.lockAndCheckOverlap(ctx, tx, funcion, funcion.ID); err != nil {
		return err
	}

	query := `
		UPDATE funciones
		SET movie_id = $2, sala_id = $3, start_time = $4, end_time = $5, duration = $6, status = $7, is_premiere = $8, is_weekend = $9, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		funcion.ID,
		funcion.MovieID,
		funcion.SalaID,
		funcion.StartTime,
		funcion.EndTime,
		funcion.Duration,
		funcion.Status,
		funcion.IsPremiere,
		funcion.IsWeekend,
	)

	if err != nil {
		r.log.Error("Failed to update funcion",
			zap.Error(err),
			zap.Int64("funcion_id", funcion.ID),
		)
		return fmt.Errorf("update funcion %d: %w", funcion.ID, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit funcion update: %w", err)
	}

	return nil
}

// lockAndCheckOverlap serializes on the sala and scans every existing showing
// in it. excludeID skips the funcion's own row during updates.
func (r *funcionRepository) lockAndCheckOverlap(ctx context.Context, tx pgx.Tx, funcion *entity.Funcion, excludeID int64) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, funcion.SalaID); err != nil {
		return fmt.Errorf("acquire sala lock %d: %w", funcion.SalaID, err)
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM funciones
			WHERE sala_id = $1 AND id <> $2
			  AND start_time < $3 AND end_time > $4
		)
	`

	var conflict bool
	err := tx.QueryRow(ctx, query,
		funcion.SalaID,
		excludeID,
		funcion.EndTime,
		funcion.StartTime,
	).Scan(&conflict)

	if err != nil {
		r.log.Error("Failed to scan for overlapping funciones",
			zap.Error(err),
			zap.Int64("sala_id", funcion.SalaID),
		)
		return fmt.Errorf("scan overlaps in sala %d: %w", funcion.SalaID, err)
	}

	if conflict {
		r.log.Warn("Scheduling conflict detected",
			zap.Int64("sala_id", funcion.SalaID),
			zap.Int("start_time", funcion.StartTime),
			zap.Int("end_time", funcion.EndTime),
		)
		return apperrors.ErrSchedulingConflict
	}

	return nil
}

func (r *funcionRepository) FindByID(ctx context.Context, id int64) (*entity.Funcion, error) {
	query := `
		SELECT id, movie_id, sala_id, start_time, end_time, duration, status, is_premiere, is_weekend, created_at, updated_at
		FROM funciones
		WHERE id = $1
	`

	var funcion entity.Funcion
	err := r.db.QueryRow(ctx, query, id).Scan(
		&funcion.ID,
		&funcion.MovieID,
		&funcion.SalaID,
		&funcion.StartTime,
		&funcion.EndTime,
		&funcion.Duration,
		&funcion.Status,
		&funcion.IsPremiere,
		&funcion.IsWeekend,
		&funcion.CreatedAt,
		&funcion.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find funcion by ID",
			zap.Error(err),
			zap.Int64("funcion_id", id),
		)
		return nil, fmt.Errorf("find funcion by ID %d: %w", id, err)
	}

	return &funcion, nil
}

func (r *funcionRepository) FindAll(ctx context.Context, salaID, movieID int64) ([]*entity.Funcion, error) {
	query := `
		SELECT id, movie_id, sala_id, start_time, end_time, duration, status, is_premiere, is_weekend, created_at, updated_at
		FROM funciones
		WHERE ($1 = 0 OR sala_id = $1)
		  AND ($2 = 0 OR movie_id = $2)
		ORDER BY sala_id, start_time
	`

	rows, err := r.db.Query(ctx, query, salaID, movieID)
	if err != nil {
		r.log.Error("Failed to find funciones",
			zap.Error(err),
			zap.Int64("sala_id", salaID),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find funciones: %w", err)
	}
	defer rows.Close()

	var funciones []*entity.Funcion
	for rows.Next() {
		var funcion entity.Funcion
		err := rows.Scan(
			&funcion.ID,
			&funcion.MovieID,
			&funcion.SalaID,
			&funcion.StartTime,
			&funcion.EndTime,
			&funcion.Duration,
			&funcion.Status,
			&funcion.IsPremiere,
			&funcion.IsWeekend,
			&funcion.CreatedAt,
			&funcion.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan funcion row", zap.Error(err))
			return nil, fmt.Errorf("scan funcion row: %w", err)
		}
		funciones = append(funciones, &funcion)
	}

	return funciones, nil
}

func (r *funcionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM funciones WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete funcion",
			zap.Error(err),
			zap.Int64("funcion_id", id),
		)
		return fmt.Errorf("delete funcion %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	r.log.Info("Funcion deleted", zap.Int64("funcion_id", id))
	return nil
}
