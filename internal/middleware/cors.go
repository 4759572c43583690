package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows read-only access from any origin. Passing origins restricts
// it to those.
func Cors(origins ...string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
		AllowedOrigins: origins,
	}
	return cors.New(options).Handler
}
