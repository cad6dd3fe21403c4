package entity

type SalaType string

const (
	SalaTypeRegular SalaType = "Regular"
	SalaTypeVIP     SalaType = "VIP"
)

type Sala struct {
	Base
	Name      string   `db:"name"`
	Capacity  int      `db:"capacity"`
	Type      SalaType `db:"type"`
	CreatedBy int64    `db:"created_by"`
}
