package middleware

import (
	"net/http"
	"strings"

	"kbbridge/appctx"
	"kbbridge/core"
)

const RequestIDHeader = "X-Request-ID"

const maxInboundRequestIDLength = 128

// RequestID tags every request with an id, reusing a caller-supplied one when present
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > maxInboundRequestIDLength {
			requestID = core.NewID("req")
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))
	})
}
