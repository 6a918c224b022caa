package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbbridge/appctx"
	"kbbridge/core"
)

func captureRequestID(t *testing.T, header string) (string, string) {
	t.Helper()
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := appctx.GetRequestID(r.Context())
		require.True(t, ok)
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/list_projects", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return seen, resp.Header().Get(RequestIDHeader)
}

func TestRequestID_Generated(t *testing.T) {
	seen, echoed := captureRequestID(t, "")

	assert.True(t, core.IsValidID(seen))
	assert.True(t, strings.HasPrefix(seen, "req_"))
	assert.Equal(t, seen, echoed)
}

func TestRequestID_ReusesInbound(t *testing.T) {
	seen, echoed := captureRequestID(t, "n8n-run-42")

	assert.Equal(t, "n8n-run-42", seen)
	assert.Equal(t, "n8n-run-42", echoed)
}

func TestRequestID_ReplacesOversizedInbound(t *testing.T) {
	seen, _ := captureRequestID(t, strings.Repeat("x", 500))

	assert.True(t, core.IsValidID(seen))
}
