package response

import (
	"time"

	"cine-taquilla/internal/data/entity"
)

type CompraResponse struct {
	ID                int64                    `json:"id"`
	UserID            int64                    `json:"user_id"`
	FuncionID         int64                    `json:"funcion_id"`
	CantidadTaquillas int                      `json:"cantidad_taquillas"`
	TipoTaquilla      entity.TicketType        `json:"tipo_taquilla"`
	CostoTotal        int64                    `json:"costo_total"`
	FechaHoraCompra   time.Time                `json:"fecha_hora_compra"`
	EstadoTransaccion entity.TransactionStatus `json:"estado_transaccion"`
	QRCode            string                   `json:"qr_code"`
	QRImage           string                   `json:"qr_image,omitempty"`
	ValidUntil        time.Time                `json:"valid_until"`
	Scanned           bool                     `json:"scanned"`
}

// RedemptionResponse is what the scanner at the point of entry sees after a
// successful verification: the purchase plus the screening context.
type RedemptionResponse struct {
	Compra  CompraResponse   `json:"compra"`
	Funcion *FuncionResponse `json:"funcion,omitempty"`
	Movie   *MovieResponse   `json:"movie,omitempty"`
	Sala    *SalaResponse    `json:"sala,omitempty"`
}

type PricingResponse struct {
	Currency     string  `json:"currency"`
	VIPPrice     int64   `json:"vip_price"`
	RegularPrice int64   `json:"regular_price"`
	ExchangeRate float64 `json:"usd_exchange_rate"`
}

func CompraToResponse(compra *entity.Compra) CompraResponse {
	return CompraResponse{
		ID:                compra.ID,
		UserID:            compra.UserID,
		FuncionID:         compra.FuncionID,
		CantidadTaquillas: compra.CantidadTaquillas,
		TipoTaquilla:      compra.TipoTaquilla,
		CostoTotal:        compra.CostoTotal,
		FechaHoraCompra:   compra.FechaHoraCompra,
		EstadoTransaccion: compra.EstadoTransaccion,
		QRCode:            compra.QRCode,
		ValidUntil:        compra.ValidUntil,
		Scanned:           compra.Scanned,
	}
}
