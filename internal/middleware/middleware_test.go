package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CallerID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewAuthMiddleware("app-123", "s3cret")(next)

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	valid := jwt.MapClaims{"aud": "app-123", "appid": "channel-1", "exp": time.Now().Add(time.Hour).Unix()}

	t.Run("valid token", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, call("Bearer "+signed(t, jwt.SigningMethodHS256, []byte("s3cret"), valid)))
		assert.Equal(t, "channel-1", seen)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call(""))
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Token abc"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+signed(t, jwt.SigningMethodHS256, []byte("other"), valid)))
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := jwt.MapClaims{"aud": "someone-else", "exp": time.Now().Add(time.Hour).Unix()}
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+signed(t, jwt.SigningMethodHS256, []byte("s3cret"), claims)))
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwt.MapClaims{"aud": "app-123", "exp": time.Now().Add(-time.Hour).Unix()}
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+signed(t, jwt.SigningMethodHS256, []byte("s3cret"), claims)))
	})

	t.Run("other algorithm", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+signed(t, jwt.SigningMethodHS512, []byte("s3cret"), valid)))
	})
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	handler := NewAuthMiddleware("", "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "", CallerID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/messages", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	preflight := func(h http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/messages", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	t.Run("configured origin", func(t *testing.T) {
		w := preflight(CORS([]string{"https://bank.example"})(ok), "https://bank.example")
		assert.Equal(t, "https://bank.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin", func(t *testing.T) {
		w := preflight(CORS([]string{"https://bank.example"})(ok), "https://evil.example")
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard drops credentials", func(t *testing.T) {
		w := preflight(CORS([]string{"*"})(ok), "https://evil.example")
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestStaticFileServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png-bytes"), 0o644))
	server := StaticFileServer(dir)

	t.Run("existing file", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logo.png", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "png-bytes", w.Body.String())
	})

	t.Run("transaction placeholder", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transaction.svg", nil))
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Equal(t, transactionSVG, w.Body.String())
	})

	t.Run("bank placeholder", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bank-logo.svg", nil))
		assert.Equal(t, bankLogoSVG, w.Body.String())
	})

	t.Run("no traversal", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.URL.Path = "/../../etc/passwd"
		server.ServeHTTP(w, req)
		assert.Equal(t, bankLogoSVG, w.Body.String())
	})
}
