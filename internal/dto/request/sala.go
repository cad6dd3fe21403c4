package request

type CreateSalaRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required,oneof=Regular VIP"`
}

type UpdateSalaRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Type     string `json:"type" validate:"required,oneof=Regular VIP"`
}
