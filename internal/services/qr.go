package services

import (
	"net/http"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/ruralpay/assistant/internal/validation"
)

// QRService renders the online-banking login link as a QR code so users on
// a phone-less channel can scan it from another device.
type QRService struct {
	loginURL string
	logger   *zap.Logger
}

func NewQRService(loginURL string, logger *zap.Logger) *QRService {
	return &QRService{loginURL: loginURL, logger: logger.Named("qr")}
}

// LoginQR renders the login link as a PNG
// @Summary Login QR code
// @Tags Account
// @Produce png
// @Success 200 {file} binary
// @Router /login/qr [get]
func (s *QRService) LoginQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(s.loginURL, qrcode.Medium, 256)
	if err != nil {
		s.logger.Error("failed to encode login QR", zap.Error(err))
		validation.SendErrorResponse(w, "Failed to generate QR code", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}
