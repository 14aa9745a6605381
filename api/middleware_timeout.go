package api

import (
	"net/http"
	"time"
)

// TimeoutMiddleware bounds how long a request may run. Requests that overrun
// get a 503 with a JSON body.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, `{"error": "Request timeout", "message": "The request took too long to process"}`)
	}
}
