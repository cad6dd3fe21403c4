package request

// PurchaseRequest starts the ticket purchase workflow. CostoTotal is never
// accepted from the caller; pricing comes from the configured price table.
type PurchaseRequest struct {
	FuncionID         int64  `json:"funcion_id" validate:"required,gt=0"`
	CantidadTaquillas int    `json:"cantidad_taquillas" validate:"required,gte=1,lte=5"`
	PaymentMethodID   string `json:"payment_method_id" validate:"required"`
}

type VerifyQRRequest struct {
	QRCode string `json:"qrCode" validate:"required"`
}
