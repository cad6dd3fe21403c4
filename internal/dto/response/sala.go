package response

import (
	"cine-taquilla/internal/data/entity"
)

type SalaResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Capacity int             `json:"capacity"`
	Type     entity.SalaType `json:"type"`
}

func SalaToResponse(sala *entity.Sala) SalaResponse {
	return SalaResponse{
		ID:       sala.ID,
		Name:     sala.Name,
		Capacity: sala.Capacity,
		Type:     sala.Type,
	}
}
