// Package apperrors defines the sentinel errors shared by services and
// repositories. Handlers translate them into HTTP responses with errors.Is,
// so a repository can signal "already redeemed" without knowing about HTTP.
package apperrors

import "errors"

var (
	// ErrNotFound is returned when a referenced movie, sala, funcion,
	// purchase or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSchedulingConflict is returned when a candidate showing overlaps an
	// existing showing in the same sala.
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrPayment is returned when the gateway rejects or fails to confirm a
	// charge. The purchase is never persisted in that case.
	ErrPayment = errors.New("payment failed")

	// ErrAlreadyRedeemed is returned when a QR code is scanned a second time.
	ErrAlreadyRedeemed = errors.New("qr code already redeemed")

	// ErrQRExpired is returned when a QR code is scanned after its validUntil.
	ErrQRExpired = errors.New("qr code expired")

	// ErrValidation is returned for bad input detected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on bad login or token verification.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
)
