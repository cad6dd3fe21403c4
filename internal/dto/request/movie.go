package request

type CreateMovieRequest struct {
	Title             string  `json:"title" validate:"required,min=1,max=200"`
	Description       *string `json:"description,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseDate       *string `json:"release_date,omitempty"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	TMDBID            *int64  `json:"tmdb_id,omitempty"`
}

type UpdateMovieRequest struct {
	Title             string  `json:"title" validate:"required,min=1,max=200"`
	Description       *string `json:"description,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseDate       *string `json:"release_date,omitempty"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	TMDBID            *int64  `json:"tmdb_id,omitempty"`
}
