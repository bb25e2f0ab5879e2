package hypercash

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrImageSize = 300

// RenderQRImage encodes the PIX copy-and-paste payload as a PNG data
// URI. Rendering failure is not fatal; the payable code alone is enough
// to complete a payment, so an empty string is returned instead.
func RenderQRImage(payableCode string, log *zap.Logger) string {
	if payableCode == "" {
		return ""
	}
	png, err := qrcode.Encode(payableCode, qrcode.Medium, qrImageSize)
	if err != nil {
		if log != nil {
			log.Warn("failed to render pix qr image", zap.Error(err))
		}
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
