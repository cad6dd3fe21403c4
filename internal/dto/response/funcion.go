package response

import (
	"cine-taquilla/internal/data/entity"
)

type FuncionResponse struct {
	ID         int64                `json:"id"`
	MovieID    int64                `json:"movie_id"`
	SalaID     int64                `json:"sala_id"`
	StartTime  int                  `json:"start_time"`
	EndTime    int                  `json:"end_time"`
	Duration   int                  `json:"duration"`
	Status     entity.FuncionStatus `json:"status"`
	IsPremiere bool                 `json:"is_premiere"`
	IsWeekend  bool                 `json:"is_weekend"`
	MovieTitle string               `json:"movie_title,omitempty"`
	SalaName   string               `json:"sala_name,omitempty"`
}

func FuncionToResponse(funcion *entity.Funcion) FuncionResponse {
	return FuncionResponse{
		ID:         funcion.ID,
		MovieID:    funcion.MovieID,
		SalaID:     funcion.SalaID,
		StartTime:  funcion.StartTime,
		EndTime:    funcion.EndTime,
		Duration:   funcion.Duration,
		Status:     funcion.Status,
		IsPremiere: funcion.IsPremiere,
		IsWeekend:  funcion.IsWeekend,
	}
}
