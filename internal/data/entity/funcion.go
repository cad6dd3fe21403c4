package entity

type FuncionStatus string

const (
	FuncionStatusProgramada FuncionStatus = "Programada"
	FuncionStatusCancelada  FuncionStatus = "Cancelada"
)

// Funcion is a scheduled showing of a movie in a sala. StartTime and EndTime
// are minutes from midnight; EndTime is always derived from the movie's
// duration and may exceed 1439 for showings that run past midnight — the
// timeline per sala is an unbounded integer line, not modulo 1440.
type Funcion struct {
	Base
	MovieID    int64         `db:"movie_id"`
	SalaID     int64         `db:"sala_id"`
	StartTime  int           `db:"start_time"`
	EndTime    int           `db:"end_time"`
	Duration   int           `db:"duration"`
	Status     FuncionStatus `db:"status"`
	IsPremiere bool          `db:"is_premiere"`
	IsWeekend  bool          `db:"is_weekend"`
}
