package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes caps how much of an unread body is drained before closing.
const maxDrainBytes = 1 << 20

// DrainAndCloseRequest - drain what the handler left unread and close the body,
// so the underlying connection can be reused
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
				_ = r.Body.Close()
			}
		})
	}
}
