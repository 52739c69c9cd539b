package common

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length in pixels of generated QR codes
const QRSize = 256

// QRCodePNG renders text as a PNG QR code
func QRCodePNG(text string) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	return png, nil
}

// QRCodeBase64 renders text as a base64 encoded PNG QR code
func QRCodeBase64(text string) (string, error) {
	png, err := QRCodePNG(text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
