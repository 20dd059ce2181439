package documents

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

const qrDataURLPrefix = "data:image/png;base64,"

// GenerateQRCode renders the ticket code as a PNG QR image and returns it as
// a base64 data URL, which is what gets stored on the ticket and embedded in
// the PDF.
func GenerateQRCode(ticketCode string) (string, error) {
	png, err := qrcode.Encode(ticketCode, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return qrDataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// DecodeQRCode turns a stored QR data URL back into raw PNG bytes.
func DecodeQRCode(dataURL string) ([]byte, error) {
	raw := dataURL
	if len(raw) >= len(qrDataURLPrefix) && raw[:len(qrDataURLPrefix)] == qrDataURLPrefix {
		raw = raw[len(qrDataURLPrefix):]
	}
	return base64.StdEncoding.DecodeString(raw)
}
