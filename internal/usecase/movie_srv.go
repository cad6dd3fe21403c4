package usecase

import (
	"context"
	"fmt"
	"time"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/data/repository"
	"cine-taquilla/internal/dto/request"
	"cine-taquilla/internal/dto/response"
	"cine-taquilla/pkg/tmdb"
	"cine-taquilla/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	GetMovies(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	UpdateMovie(ctx context.Context, id int64, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id int64) error
	// Lookup searches the external metadata catalog; it never touches the
	// local movies table.
	Lookup(ctx context.Context, query string) ([]response.MovieLookupResponse, error)
}

type movieService struct {
	repo *repository.Repository
	tmdb *tmdb.Client
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, tmdbClient *tmdb.Client, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		tmdb: tmdbClient,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	movie := &entity.Movie{
		Title:             req.Title,
		Description:       req.Description,
		PosterURL:         req.PosterURL,
		Rating:            req.Rating,
		DurationInMinutes: req.DurationInMinutes,
		TMDBID:            req.TMDBID,
	}
	if req.ReleaseDate != nil {
		parsed, err := time.Parse(time.DateOnly, *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: release_date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		movie.ReleaseDate = &parsed
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.log.Info("movie created", zap.Int64("movie_id", movie.ID), zap.String("title", movie.Title))
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
	}
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovies(ctx context.Context, page request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	total, err := s.repo.Movie.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, response.MovieToResponse(movie))
	}
	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id int64, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	if verrs := utils.ValidateStruct(req); len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, utils.FormatValidationErrors(verrs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.PosterURL = req.PosterURL
	movie.Rating = req.Rating
	movie.DurationInMinutes = req.DurationInMinutes
	movie.TMDBID = req.TMDBID
	movie.ReleaseDate = nil
	if req.ReleaseDate != nil {
		parsed, err := time.Parse(time.DateOnly, *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: release_date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		movie.ReleaseDate = &parsed
	}

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %d: %w", id, apperrors.ErrNotFound)
	}
	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	s.log.Info("movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (s *movieService) Lookup(ctx context.Context, query string) ([]response.MovieLookupResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", apperrors.ErrValidation)
	}
	if s.tmdb == nil {
		return nil, fmt.Errorf("movie lookup is not configured")
	}

	results, err := s.tmdb.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search metadata catalog: %w", err)
	}

	items := make([]response.MovieLookupResponse, 0, len(results))
	for _, r := range results {
		items = append(items, response.MovieLookupResponse{
			TMDBID:      r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			VoteAverage: r.VoteAverage,
		})
	}
	return items, nil
}
