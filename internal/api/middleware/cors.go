package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware that answers cross-origin requests from the given
// origins for the methods and headers the task API uses. Preflight requests
// are passed through to the router so OPTIONS routes still produce a body.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		ExposedHeaders:     []string{TraceIDHeader},
		OptionsPassthrough: true,
		MaxAge:             300,
	})
}
