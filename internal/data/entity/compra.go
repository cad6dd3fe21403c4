package entity

import (
	"time"
)

type TransactionStatus string

const (
	TransactionCompletada TransactionStatus = "Completada"
	TransactionCancelada  TransactionStatus = "Cancelada"
)

type TicketType string

const (
	TicketRegular TicketType = "Regular"
	TicketVIP     TicketType = "VIP"
)

// Compra is a completed ticket purchase. CostoTotal is integer Dominican
// Pesos, never client-supplied. QRCode holds the opaque ticket token looked
// up verbatim at the point of entry; Scanned flips false→true exactly once.
type Compra struct {
	Base
	UserID            int64             `db:"user_id"`
	FuncionID         int64             `db:"funcion_id"`
	CantidadTaquillas int               `db:"cantidad_taquillas"`
	TipoTaquilla      TicketType        `db:"tipo_taquilla"`
	CostoTotal        int64             `db:"costo_total"`
	FechaHoraCompra   time.Time         `db:"fecha_hora_compra"`
	EstadoTransaccion TransactionStatus `db:"estado_transaccion"`
	PaymentIntentID   string            `db:"payment_intent_id"`
	QRCode            string            `db:"qr_code"`
	ValidUntil        time.Time         `db:"valid_until"`
	Scanned           bool              `db:"scanned"`
}
