package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight result.
const corsMaxAge = 600

// CORS returns a middleware that lets browsers on the given origins read
// responses cross-origin. Only simple reads are allowed: GET and HEAD with the
// CORS-safelisted request headers, no credentials and no exposed headers.
// Requests from any other origin are served without allow headers.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, len(allowedOrigins))
	copy(origins, allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
		},
		AllowedHeaders: []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           corsMaxAge,
	})
}
