package response

import (
	"time"

	"cine-taquilla/internal/data/entity"
)

type MovieResponse struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	PosterURL         *string  `json:"poster_url,omitempty"`
	Rating            float64  `json:"rating"`
	ReleaseDate       *string  `json:"release_date,omitempty"`
	DurationInMinutes int      `json:"duration_in_minutes"`
	TMDBID            *int64   `json:"tmdb_id,omitempty"`
}

type MovieLookupResponse struct {
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:                movie.ID,
		Title:             movie.Title,
		Description:       movie.Description,
		PosterURL:         movie.PosterURL,
		Rating:            movie.Rating,
		DurationInMinutes: movie.DurationInMinutes,
		TMDBID:            movie.TMDBID,
	}
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format(time.DateOnly)
		resp.ReleaseDate = &formatted
	}
	return resp
}
