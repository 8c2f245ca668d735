package middleware

import "net/http"

// BodyLimit caps every request body at maxBytes using http.MaxBytesReader.
// Reads past the cap fail with *http.MaxBytesError. A maxBytes of zero or
// less leaves bodies unbounded.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
