package request

// CreateFuncionRequest carries a candidate showing. EndTime is never accepted
// from the caller: it is derived from the movie's duration. StartTime is
// minutes from midnight.
type CreateFuncionRequest struct {
	MovieID    int64  `json:"movie_id" validate:"required,gt=0"`
	SalaID     int64  `json:"sala_id" validate:"required,gt=0"`
	StartTime  int    `json:"start_time" validate:"gte=0,lte=1439"`
	Status     string `json:"status,omitempty"`
	IsPremiere bool   `json:"is_premiere"`
	IsWeekend  bool   `json:"is_weekend"`
}

type UpdateFuncionRequest struct {
	MovieID    int64  `json:"movie_id" validate:"required,gt=0"`
	SalaID     int64  `json:"sala_id" validate:"required,gt=0"`
	StartTime  int    `json:"start_time" validate:"gte=0,lte=1439"`
	Status     string `json:"status,omitempty"`
	IsPremiere bool   `json:"is_premiere"`
	IsWeekend  bool   `json:"is_weekend"`
}
