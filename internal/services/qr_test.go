package services

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQRService_LoginQR(t *testing.T) {
	service := NewQRService("https://online.ruralpay.example/login", zap.NewNop())

	w := httptest.NewRecorder()
	service.LoginQR(w, httptest.NewRequest(http.MethodGet, "/api/login/qr", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}
