package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS allows browser calls from the configured origins only. Credentials
// are never allowed together with a wildcard origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	wildcard := slices.ContainsFunc(origins, func(o string) bool {
		return o == "*" || o == "http://*" || o == "https://*"
	})
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: !wildcard,
		MaxAge:           86400,
	})
}
