// Package qr renders ticket tokens as scannable PNG images.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// EncodePNG returns the token rendered as a PNG byte slice.
func EncodePNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr for token: %w", err)
	}
	return png, nil
}

// EncodeDataURI returns the token as an inline image/png data URI, suitable
// for embedding in an API response or email body.
func EncodeDataURI(token string) (string, error) {
	png, err := EncodePNG(token)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
