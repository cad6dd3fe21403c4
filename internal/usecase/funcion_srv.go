package usecase

import (
	"context"
	"errors"
	"fmt"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/pkg/metrics"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

type FuncionService interface {
	CreateFuncion(ctx context.Context, req *request.CreateFuncionRequest) (*response.FuncionResponse, error)
	GetFuncionByID(ctx context.Context, id int64) (*response.FuncionResponse, error)
	// GetFunciones filters by sala and/or movie; zero means no filter.
	GetFunciones(ctx context.Context, salaID, movieID int64) ([]response.FuncionResponse, error)
	UpdateFuncion(ctx context.Context, id int64, req *request.UpdateFuncionRequest) (*response.FuncionResponse, error)
	DeleteFuncion(ctx context.Context, id int64) error
}

type funcionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFuncionService(repo *repository.Repository, log *zap.Logger) FuncionService {
	return &funcionService{
		repo: repo,
		log:  log.With(zap.String("service", "funcion")),
	}
}

// Overlaps reports whether two half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back showings, where one ends exactly
// when the next starts, do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func (s *funcionService) CreateFuncion(ctx context.Context, req *request.CreateFuncionRequest) (*response.FuncionResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	funcion, sala, err := s.buildFuncion(ctx, req.MovieID, req.SalaID, req.StartTime, req.Status, req.IsPremiere, req.IsWeekend)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Funcion.CreateScheduled(ctx, funcion); err != nil {
		if errors.Is(err, apperrors.ErrSchedulingConflict) {
			metrics.SchedulingConflictsTotal.Inc()
			return nil, fmt.Errorf("sala %q already has a showing in that time range: %w", sala.Name, apperrors.ErrSchedulingConflict)
		}
		return nil, fmt.Errorf("failed to create funcion: %w", err)
	}

	s.log.Info("funcion scheduled",
		zap.Int64("funcion_id", funcion.ID),
		zap.Int64("sala_id", funcion.SalaID),
		zap.Int("start_time", funcion.StartTime),
		zap.Int("end_time", funcion.EndTime))

	resp := s.toResponse(ctx, funcion)
	return &resp, nil
}

func (s *funcionService) GetFuncionByID(ctx context.Context, id int64) (*response.FuncionResponse, error) {
	funcion, err := s.repo.Funcion.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find funcion: %w", err)
	}
	if funcion == nil {
		return nil, fmt.Errorf("funcion %d: %w", id, apperrors.ErrNotFound)
	}
	resp := s.toResponse(ctx, funcion)
	return &resp, nil
}

func (s *funcionService) GetFunciones(ctx context.Context, salaID, movieID int64) ([]response.FuncionResponse, error) {
	funciones, err := s.repo.Funcion.FindAll(ctx, salaID, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list funciones: %w", err)
	}
	items := make([]response.FuncionResponse, 0, len(funciones))
	for _, funcion := range funciones {
		items = append(items, response.FuncionToResponse(funcion))
	}
	return items, nil
}

func (s *funcionService) UpdateFuncion(ctx context.Context, id int64, req *request.UpdateFuncionRequest) (*response.FuncionResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	existing, err := s.repo.Funcion.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find funcion: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("funcion %d: %w", id, apperrors.ErrNotFound)
	}

	funcion, sala, err := s.buildFuncion(ctx, req.MovieID, req.SalaID, req.StartTime, req.Status, req.IsPremiere, req.IsWeekend)
	if err != nil {
		return nil, err
	}
	funcion.ID = id
	funcion.CreatedAt = existing.CreatedAt

	if err := s.repo.Funcion.UpdateScheduled(ctx, funcion); err != nil {
		if errors.Is(err, apperrors.ErrSchedulingConflict) {
			metrics.SchedulingConflictsTotal.Inc()
			return nil, fmt.Errorf("sala %q already has a showing in that time range: %w", sala.Name, apperrors.ErrSchedulingConflict)
		}
		return nil, fmt.Errorf("failed to update funcion: %w", err)
	}

	resp := s.toResponse(ctx, funcion)
	return &resp, nil
}

func (s *funcionService) DeleteFuncion(ctx context.Context, id int64) error {
	funcion, err := s.repo.Funcion.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find funcion: %w", err)
	}
	if funcion == nil {
		return fmt.Errorf("funcion %d: %w", id, apperrors.ErrNotFound)
	}
	if err := s.repo.Funcion.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete funcion: %w", err)
	}
	s.log.Info("funcion deleted", zap.Int64("funcion_id", id))
	return nil
}

// buildFuncion resolves the movie and sala and derives the showing's end
// time from the movie's duration. EndTime may land past 1439 when the
// showing crosses midnight; that is intentional.
func (s *funcionService) buildFuncion(ctx context.Context, movieID, salaID int64, startTime int, status string, isPremiere, isWeekend bool) (*entity.Funcion, *entity.Sala, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, nil, fmt.Errorf("movie %d: %w", movieID, apperrors.ErrNotFound)
	}
	if movie.DurationInMinutes <= 0 {
		return nil, nil, fmt.Errorf("%w: movie %d has no duration", apperrors.ErrValidation, movieID)
	}

	sala, err := s.repo.Sala.FindByID(ctx, salaID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find sala: %w", err)
	}
	if sala == nil {
		return nil, nil, fmt.Errorf("sala %d: %w", salaID, apperrors.ErrNotFound)
	}

	funcionStatus := entity.FuncionStatusProgramada
	if status != "" {
		if status != string(entity.FuncionStatusProgramada) && status != string(entity.FuncionStatusCancelada) {
			return nil, nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
		}
		funcionStatus = entity.FuncionStatus(status)
	}

	return &entity.Funcion{
		MovieID:    movieID,
		SalaID:     salaID,
		StartTime:  startTime,
		EndTime:    startTime + movie.DurationInMinutes,
		Duration:   movie.DurationInMinutes,
		Status:     funcionStatus,
		IsPremiere: isPremiere,
		IsWeekend:  isWeekend,
	}, sala, nil
}

// toResponse enriches the funcion with display names. The lookups are best
// effort; a missing join only leaves the name blank.
func (s *funcionService) toResponse(ctx context.Context, funcion *entity.Funcion) response.FuncionResponse {
	resp := response.FuncionToResponse(funcion)
	if movie, err := s.repo.Movie.FindByID(ctx, funcion.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	if sala, err := s.repo.Sala.FindByID(ctx, funcion.SalaID); err == nil && sala != nil {
		resp.SalaName = sala.Name
	}
	return resp
}
