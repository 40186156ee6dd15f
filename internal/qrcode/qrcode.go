package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// JoinURL builds the link a device opens to join a table.
func JoinURL(base, tableID string) string {
	return fmt.Sprintf("%s/api/tables/%s", base, url.PathEscape(tableID))
}

// JoinCode creates a QR code PNG image for the given join URL.
func JoinCode(joinURL string, size int) ([]byte, error) {
	return qr.Encode(joinURL, qr.Medium, size)
}
