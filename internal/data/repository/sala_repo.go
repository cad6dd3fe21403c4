package repository

import (
	"context"
	"errors"
	"fmt"

	"cine-taquilla/internal/data/entity"
	"cine-taquilla/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SalaRepository interface {
	Create(ctx context.Context, sala *entity.Sala) error
	FindByID(ctx context.Context, id int64) (*entity.Sala, error)
	FindAll(ctx context.Context) ([]*entity.Sala, error)
	Update(ctx context.Context, sala *entity.Sala) error
	Delete(ctx context.Context, id int64) error
}

type salaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSalaRepository(db database.PgxIface, log *zap.Logger) SalaRepository {
	return &salaRepository{
		db:  db,
		log: log.With(zap.String("repository", "sala")),
	}
}

func (r *salaRepository) Create(ctx context.Context, sala *entity.Sala) error {
	query := `
		INSERT INTO salas (name, capacity, type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		sala.Name,
		sala.Capacity,
		sala.Type,
		sala.CreatedBy,
	).Scan(&sala.ID, &sala.CreatedAt, &sala.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create sala",
			zap.Error(err),
			zap.String("name", sala.Name),
		)
		return fmt.Errorf("create sala %s: %w", sala.Name, err)
	}

	return nil
}

func (r *salaRepository) FindByID(ctx context.Context, id int64) (*entity.Sala, error) {
	query := `
		SELECT id, name, capacity, type, created_by, created_at, updated_at
		FROM salas
		WHERE id = $1
	`

	var sala entity.Sala
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sala.ID,
		&sala.Name,
		&sala.Capacity,
		&sala.Type,
		&sala.CreatedBy,
		&sala.CreatedAt,
		&sala.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sala by ID",
			zap.Error(err),
			zap.Int64("sala_id", id),
		)
		return nil, fmt.Errorf("find sala by ID %d: %w", id, err)
	}

	return &sala, nil
}

func (r *salaRepository) FindAll(ctx context.Context) ([]*entity.Sala, error) {
	query := `
		SELECT id, name, capacity, type, created_by, created_at, updated_at
		FROM salas
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find salas", zap.Error(err))
		return nil, fmt.Errorf("find salas: %w", err)
	}
	defer rows.Close()

	var salas []*entity.Sala
	for rows.Next() {
		var sala entity.Sala
		err := rows.Scan(
			&sala.ID,
			&sala.Name,
			&sala.Capacity,
			&sala.Type,
			&sala.CreatedBy,
			&sala.CreatedAt,
			&sala.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sala row", zap.Error(err))
			return nil, fmt.Errorf("scan sala row: %w", err)
		}
		salas = append(salas, &sala)
	}

	return salas, nil
}

func (r *salaRepository) Update(ctx context.Context, sala *entity.Sala) error {
	query := `
		UPDATE salas
		SET name = $2, capacity = $3, type = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		sala.ID,
		sala.Name,
		sala.Capacity,
		sala.Type,
	)

	if err != nil {
		r.log.Error("Failed to update sala",
			zap.Error(err),
			zap.Int64("sala_id", sala.ID),
		)
		return fmt.Errorf("update sala %d: %w", sala.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sala %d not found", sala.ID)
	}

	return nil
}

func (r *salaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM salas WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete sala",
			zap.Error(err),
			zap.Int64("sala_id", id),
		)
		return fmt.Errorf("delete sala %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sala %d not found", id)
	}

	r.log.Info("Sala deleted", zap.Int64("sala_id", id))
	return nil
}
