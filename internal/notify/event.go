package notify

import (
	"time"
)

// TicketPurchasedEvent is published after a purchase commits. It carries
// everything the mail consumer needs so it never touches the database.
type TicketPurchasedEvent struct {
	CompraID        int64     `json:"compra_id"`
	UserID          int64     `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	MovieTitle      string    `json:"movie_title"`
	SalaName        string    `json:"sala_name"`
	StartTime       int       `json:"start_time"`
	Cantidad        int       `json:"cantidad"`
	TipoTaquilla    string    `json:"tipo_taquilla"`
	CostoTotal      int64     `json:"costo_total"`
	QRCode          string    `json:"qr_code"`
	FechaHoraCompra time.Time `json:"fecha_hora_compra"`
}
