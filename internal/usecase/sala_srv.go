package usecase

import (
	"context"
	"fmt"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

type SalaService interface {
	CreateSala(ctx context.Context, createdBy int64, req *request.CreateSalaRequest) (*response.SalaResponse, error)
	GetSalaByID(ctx context.Context, id int64) (*response.SalaResponse, error)
	GetSalas(ctx context.Context) ([]response.SalaResponse, error)
	UpdateSala(ctx context.Context, id int64, req *request.UpdateSalaRequest) (*response.SalaResponse, error)
	DeleteSala(ctx context.Context, id int64) error
}

type salaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSalaService(repo *repository.Repository, log *zap.Logger) SalaService {
	return &salaService{
		repo: repo,
		log:  log.With(zap.String("service", "sala")),
	}
}

func (s *salaService) CreateSala(ctx context.Context, createdBy int64, req *request.CreateSalaRequest) (*response.SalaResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	sala := &entity.Sala{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Type:      entity.SalaType(req.Type),
		CreatedBy: createdBy,
	}
	if err := s.repo.Sala.Create(ctx, sala); err != nil {
		return nil, fmt.Errorf("failed to create sala: %w", err)
	}

	s.log.Info("sala created", zap.Int64("sala_id", sala.ID), zap.String("name", sala.Name))
	resp := response.SalaToResponse(sala)
	return &resp, nil
}

func (s *salaService) GetSalaByID(ctx context.Context, id int64) (*response.SalaResponse, error) {
	sala, err := s.repo.Sala.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find sala: %w", err)
	}
	if sala == nil {
		return nil, fmt.Errorf("sala %d: %w", id, apperrors.ErrNotFound)
	}
	resp := response.SalaToResponse(sala)
	return &resp, nil
}

func (s *salaService) GetSalas(ctx context.Context) ([]response.SalaResponse, error) {
	salas, err := s.repo.Sala.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list salas: %w", err)
	}
	items := make([]response.SalaResponse, 0, len(salas))
	for _, sala := range salas {
		items = append(items, response.SalaToResponse(sala))
	}
	return items, nil
}

func (s *salaService) UpdateSala(ctx context.Context, id int64, req *request.UpdateSalaRequest) (*response.SalaResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	sala, err := s.repo.Sala.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find sala: %w", err)
	}
	if sala == nil {
		return nil, fmt.Errorf("sala %d: %w", id, apperrors.ErrNotFound)
	}

	sala.Name = req.Name
	sala.Capacity = req.Capacity
	sala.Type = entity.SalaType(req.Type)

	if err := s.repo.Sala.Update(ctx, sala); err != nil {
		return nil, fmt.Errorf("failed to update sala: %w", err)
	}
	resp := response.SalaToResponse(sala)
	return &resp, nil
}

func (s *salaService) DeleteSala(ctx context.Context, id int64) error {
	sala, err := s.repo.Sala.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find sala: %w", err)
	}
	if sala == nil {
		return fmt.Errorf("sala %d: %w", id, apperrors.ErrNotFound)
	}
	if err := s.repo.Sala.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sala: %w", err)
	}
	s.log.Info("sala deleted", zap.Int64("sala_id", id))
	return nil
}
