package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const bankLogoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#f0f0f0"/><path d="M100 40l60 30v10H40V70zM50 90h15v50H50zm42 0h16v50H92zm43 0h15v50h-15zM40 150h120v12H40z" fill="#2b5797"/><text x="100" y="185" text-anchor="middle" font-family="Arial" font-size="14" fill="#666">BANK</text></svg>`

const transactionSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><circle cx="32" cy="32" r="30" fill="#e8f1fb"/><path d="M18 26h24l-6-6m6 18H22l6 6" stroke="#2b5797" stroke-width="4" fill="none" stroke-linecap="round" stroke-linejoin="round"/></svg>`

// StaticFileServer serves card images from dir. Missing images fall back to
// built-in placeholders so cards always render.
func StaticFileServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		file := filepath.Join(dir, filepath.FromSlash(name))

		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "public, max-age=2592000")
			http.ServeFile(w, r, file)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if strings.Contains(name, "transaction") {
			w.Write([]byte(transactionSVG))
			return
		}
		w.Write([]byte(bankLogoSVG))
	})
}
